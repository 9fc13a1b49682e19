package shipment

import (
	"fmt"

	"timberops/internal/pkg/errs"
)

// Status represents the lifecycle state of a shipment.
// It implements a state machine with defined transitions so shipments follow
// the review workflow between sender and receiver.
//
// State transitions:
//
//	Draft ──> Pending ──> Completed
//	  ▲          │  └───> Rejected
//	  └──────────┘
//	  (cancel submission)
//
// Accepted exists in the status vocabulary because persisted rows may carry
// it, but the accept transition jumps straight to Completed once the ownership
// transfer succeeds; no engine operation produces Accepted.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status. Draft shipments are freely mutable and the
	// only ones that can be deleted.
	Draft

	// Pending means the sender submitted the shipment for the receiver's review.
	Pending

	// Accepted is reachable in data but not through the engine; see the type
	// comment.
	Accepted

	// Completed means the receiver accepted and ownership was transferred.
	// This is a terminal state.
	Completed

	// Rejected means the receiver declined with a reason. Terminal; packages
	// are untouched.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Draft:     "draft",
		Pending:   "pending",
		Accepted:  "accepted",
		Completed: "completed",
		Rejected:  "rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:     "draft",
		Pending:   "pending",
		Accepted:  "accepted",
		Completed: "completed",
		Rejected:  "rejected",
	}
}

// Validate checks the Status is one of the defined workflow states.
// Used when reconstructing shipments from persistence.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// StatusFromString parses the lower-case status name used in persistence and
// the API.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// String returns the lower-case name used in persistence and the API.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// ValidateDraft returns ErrNotDraft unless the shipment is still a draft.
// Every draft mutation entry point re-checks this against fresh row state.
func (s Status) ValidateDraft() error {
	if s != Draft {
		return errs.NewDomainError(
			errs.CodeNotDraft,
			fmt.Sprintf("shipment is %s, only drafts can be modified", s),
		)
	}
	return nil
}

// ValidatePending returns ErrNotPending unless the shipment awaits review.
func (s Status) ValidatePending() error {
	if s != Pending {
		return errs.NewDomainError(
			errs.CodeNotPending,
			fmt.Sprintf("shipment is %s, not pending review", s),
		)
	}
	return nil
}

// Submit transitions Draft to Pending.
func (s Status) Submit() (Status, error) {
	if err := s.ValidateDraft(); err != nil {
		return 0, err
	}
	return Pending, nil
}

// CancelSubmission transitions Pending back to Draft.
func (s Status) CancelSubmission() (Status, error) {
	if err := s.ValidatePending(); err != nil {
		return 0, err
	}
	return Draft, nil
}

// Accept transitions Pending to Completed. The intermediate Accepted state is
// skipped; the transfer and the finalize run in one transaction.
func (s Status) Accept() (Status, error) {
	if err := s.ValidatePending(); err != nil {
		return 0, err
	}
	return Completed, nil
}

// Reject transitions Pending to Rejected.
func (s Status) Reject() (Status, error) {
	if err := s.ValidatePending(); err != nil {
		return 0, err
	}
	return Rejected, nil
}

// IsTerminal reports whether no further transition can leave this status.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Rejected
}
