package shipment

import (
	"errors"
	"fmt"
	"time"

	"timberops/internal/core/domain/model/kernel"
	"timberops/internal/pkg/errs"
)

// ErrShipmentIsNotConstructed is returned when a Shipment instance was not
// created through NewShipment or RestoreShipment.
var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment or RestoreShipment")

// Shipment is the aggregate root for the transfer workflow between a sender
// and a receiver organisation.
//
// Shipment follows these invariants:
//   - Sender and receiver organisations must differ
//   - Status transitions follow the state machine in Status
//   - Workflow timestamps are set exactly once by their transition and only
//     cancelSubmission ever clears one (submittedAt)
//   - Party authorization is re-checked on every transition against the
//     identity the caller presents, never cached
//   - Pallet numbers are unique within the shipment, assigned as max + 1
//   - Mutation of anything but transition fields requires draft status
type Shipment struct {
	id             kernel.UUID
	code           string
	shipmentNumber int64

	fromOrganisationID kernel.UUID
	toOrganisationID   kernel.UUID

	status Status

	submittedAt     *time.Time
	reviewedAt      *time.Time
	reviewedBy      *kernel.UUID
	rejectionReason string
	completedAt     *time.Time

	transportCost *kernel.Money

	pallets []*Pallet

	// version is the optimistic-concurrency token compared-and-swapped by the
	// persistence layer on every update.
	version int64

	isConstructed bool
}

// NewShipment creates a draft shipment between two distinct organisations.
// The code comes from the code service; the shipment number from storage.
func NewShipment(
	id kernel.UUID,
	code string,
	shipmentNumber int64,
	fromOrganisationID kernel.UUID,
	toOrganisationID kernel.UUID,
) (*Shipment, error) {
	s := &Shipment{
		status:        Draft,
		isConstructed: true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setCode(code),
		s.setShipmentNumber(shipmentNumber),
		s.setParties(fromOrganisationID, toOrganisationID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreShipment reconstructs a shipment from persistence with its full
// workflow state, pallets, and concurrency token.
func RestoreShipment(
	id kernel.UUID,
	code string,
	shipmentNumber int64,
	fromOrganisationID kernel.UUID,
	toOrganisationID kernel.UUID,
	status Status,
	submittedAt *time.Time,
	reviewedAt *time.Time,
	reviewedBy *kernel.UUID,
	rejectionReason string,
	completedAt *time.Time,
	transportCost *kernel.Money,
	pallets []*Pallet,
	version int64,
) (*Shipment, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	s := &Shipment{
		status:          status,
		submittedAt:     submittedAt,
		reviewedAt:      reviewedAt,
		reviewedBy:      reviewedBy,
		rejectionReason: rejectionReason,
		completedAt:     completedAt,
		transportCost:   transportCost,
		pallets:         pallets,
		version:         version,
		isConstructed:   true,
	}

	if err := errors.Join(
		s.setID(id),
		s.setCode(code),
		s.setShipmentNumber(shipmentNumber),
		s.setParties(fromOrganisationID, toOrganisationID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Shipment was constructed through a factory function.
func (s *Shipment) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrShipmentIsNotConstructed
	}
	return nil
}

// IsEqual compares two shipments by identifier.
func (s *Shipment) IsEqual(other *Shipment) bool {
	return other != nil && s.id.IsEqual(other.id)
}

// ID returns the shipment's unique identifier.
func (s *Shipment) ID() kernel.UUID {
	return s.id
}

// Code returns the human-readable shipment code, e.g. "ABC-XYZ-004".
func (s *Shipment) Code() string {
	return s.code
}

// ShipmentNumber returns the monotonic shipment number.
func (s *Shipment) ShipmentNumber() int64 {
	return s.shipmentNumber
}

// FromOrganisationID returns the sender organisation.
func (s *Shipment) FromOrganisationID() kernel.UUID {
	return s.fromOrganisationID
}

// ToOrganisationID returns the receiver organisation.
func (s *Shipment) ToOrganisationID() kernel.UUID {
	return s.toOrganisationID
}

// Status returns the current workflow status.
func (s *Shipment) Status() Status {
	return s.status
}

// SubmittedAt returns when the shipment was submitted, nil while draft.
func (s *Shipment) SubmittedAt() *time.Time {
	return s.submittedAt
}

// ReviewedAt returns when the receiver reviewed the shipment.
func (s *Shipment) ReviewedAt() *time.Time {
	return s.reviewedAt
}

// ReviewedBy returns the user who accepted or rejected, nil before review.
func (s *Shipment) ReviewedBy() *kernel.UUID {
	return s.reviewedBy
}

// RejectionReason returns the reason supplied on reject, empty otherwise.
func (s *Shipment) RejectionReason() string {
	return s.rejectionReason
}

// CompletedAt returns when the ownership transfer completed.
func (s *Shipment) CompletedAt() *time.Time {
	return s.completedAt
}

// TransportCost returns the optional transport cost in EUR.
func (s *Shipment) TransportCost() *kernel.Money {
	return s.transportCost
}

// Version returns the optimistic-concurrency token.
func (s *Shipment) Version() int64 {
	return s.version
}

// Pallets returns the shipment's pallets in creation order.
func (s *Shipment) Pallets() []*Pallet {
	return s.pallets
}

// FindPallet returns the pallet with the given id, if present.
func (s *Shipment) FindPallet(palletID kernel.UUID) (*Pallet, bool) {
	for _, p := range s.pallets {
		if p.ID().IsEqual(palletID) {
			return p, true
		}
	}
	return nil, false
}

// IsSender reports whether the organisation is the sending party.
func (s *Shipment) IsSender(organisationID kernel.UUID) bool {
	return s.fromOrganisationID.IsEqual(organisationID)
}

// IsReceiver reports whether the organisation is the receiving party.
func (s *Shipment) IsReceiver(organisationID kernel.UUID) bool {
	return s.toOrganisationID.IsEqual(organisationID)
}

// Submit moves the shipment from draft to pending review.
//
// Only the sender may submit, and the shipment must carry at least one linked
// package; an empty shipment has nothing to transfer.
func (s *Shipment) Submit(callerOrg kernel.UUID, packageCount int, now time.Time) error {
	if !s.IsSender(callerOrg) {
		return errs.NewDomainError(errs.CodeForbidden, "only the sending organisation can submit a shipment")
	}
	if packageCount < 1 {
		return errs.ErrNoPackages
	}

	newStatus, err := s.status.Submit()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.submittedAt = &now
	return nil
}

// CancelSubmission returns a pending shipment to draft before review.
// Only the sender may cancel; submittedAt is cleared.
func (s *Shipment) CancelSubmission(callerOrg kernel.UUID) error {
	if !s.IsSender(callerOrg) {
		return errs.NewDomainError(errs.CodeForbidden, "only the sending organisation can cancel a submission")
	}

	newStatus, err := s.status.CancelSubmission()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.submittedAt = nil
	return nil
}

// Accept finalizes the shipment after a successful ownership transfer.
// Only the receiver may accept. The caller is responsible for running the
// package bulk-transfer in the same transaction before persisting this state.
func (s *Shipment) Accept(callerOrg kernel.UUID, reviewer kernel.UUID, now time.Time) error {
	if !s.IsReceiver(callerOrg) {
		return errs.NewDomainError(errs.CodeForbidden, "only the receiving organisation can accept a shipment")
	}
	if err := reviewer.Validate(); err != nil {
		return err
	}

	newStatus, err := s.status.Accept()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.reviewedAt = &now
	s.reviewedBy = &reviewer
	s.completedAt = &now
	return nil
}

// Reject declines a pending shipment with a non-empty reason.
// Only the receiver may reject; packages are not touched.
func (s *Shipment) Reject(callerOrg kernel.UUID, reviewer kernel.UUID, reason string, now time.Time) error {
	if !s.IsReceiver(callerOrg) {
		return errs.NewDomainError(errs.CodeForbidden, "only the receiving organisation can reject a shipment")
	}
	if err := reviewer.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.ErrReasonRequired
	}

	newStatus, err := s.status.Reject()
	if err != nil {
		return err
	}

	s.status = newStatus
	s.reviewedAt = &now
	s.reviewedBy = &reviewer
	s.rejectionReason = reason
	return nil
}

// ValidateDelete checks whether the caller may delete this shipment.
// Drafts are deletable by the sender, or by the receiver when the sender is
// an external organisation (incoming drafts are created on the sender's
// behalf). Production-input references on linked packages are checked by the
// handler against storage.
func (s *Shipment) ValidateDelete(callerOrg kernel.UUID, senderIsExternal bool) error {
	if err := s.status.ValidateDraft(); err != nil {
		return err
	}
	if s.IsSender(callerOrg) {
		return nil
	}
	if s.IsReceiver(callerOrg) && senderIsExternal {
		return nil
	}
	return errs.NewDomainError(errs.CodeForbidden, "caller may not delete this shipment")
}

// SetTransportCost records the optional transport cost. Draft only.
func (s *Shipment) SetTransportCost(cost kernel.Money) error {
	if err := s.status.ValidateDraft(); err != nil {
		return err
	}
	s.transportCost = &cost
	return nil
}

// CreatePallet adds a pallet numbered max existing + 1, starting at 1 on an
// empty draft. Deleted numbers are not reassigned as long as a higher-numbered
// pallet remains.
func (s *Shipment) CreatePallet(palletID kernel.UUID) (*Pallet, error) {
	if err := s.status.ValidateDraft(); err != nil {
		return nil, err
	}

	next := 1
	for _, p := range s.pallets {
		if p.PalletNumber() >= next {
			next = p.PalletNumber() + 1
		}
	}

	pallet, err := NewPallet(palletID, next)
	if err != nil {
		return nil, err
	}

	s.pallets = append(s.pallets, pallet)
	return pallet, nil
}

// DeletePallet removes a pallet from the draft. Packages referencing it
// become loose; clearing their pallet linkage is the caller's job.
func (s *Shipment) DeletePallet(palletID kernel.UUID) error {
	if err := s.status.ValidateDraft(); err != nil {
		return err
	}

	for i, p := range s.pallets {
		if p.ID().IsEqual(palletID) {
			s.pallets = append(s.pallets[:i], s.pallets[i+1:]...)
			return nil
		}
	}
	return errs.NewDomainError(
		errs.CodePalletNotFound,
		fmt.Sprintf("pallet %s does not belong to shipment %s", palletID, s.code),
	)
}

func (s *Shipment) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shipment) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("shipmentCode")
	}
	s.code = code
	return nil
}

func (s *Shipment) setShipmentNumber(number int64) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipmentNumber",
			fmt.Errorf("%d is not greater than 0", number),
		)
	}
	s.shipmentNumber = number
	return nil
}

func (s *Shipment) setParties(from, to kernel.UUID) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if from.IsEqual(to) {
		return errs.ErrSameOrg
	}
	s.fromOrganisationID = from
	s.toOrganisationID = to
	return nil
}
