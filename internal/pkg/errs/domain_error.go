package errs

import (
	"errors"
	"fmt"
)

// ErrorCode classifies every failure a public engine operation can return.
// The HTTP boundary serializes the code next to the human-readable message,
// so callers can branch on the code and show the message as-is.
type ErrorCode string

const (
	// Authentication / authorization.
	CodeUnauthenticated ErrorCode = "Unauthenticated"
	CodeForbidden       ErrorCode = "Forbidden"
	CodeNoOrganisation  ErrorCode = "NoOrganisation"

	// State conflicts, always re-checked against fresh row state.
	CodeNotDraft   ErrorCode = "NotDraft"
	CodeNotPending ErrorCode = "NotPending"

	// Input validation, checked before any mutation.
	CodeSameOrg          ErrorCode = "SameOrg"
	CodeReasonRequired   ErrorCode = "ReasonRequired"
	CodeNoPackages       ErrorCode = "NoPackages"
	CodeNoValidPackages  ErrorCode = "NoValidPackages"
	CodeValidationFailed ErrorCode = "ValidationFailed"

	// Referential integrity.
	CodeNotFound       ErrorCode = "NotFound"
	CodeOrgNotFound    ErrorCode = "OrgNotFound"
	CodePalletNotFound ErrorCode = "PalletNotFound"
	CodeWrongShipment  ErrorCode = "WrongShipment"

	// Storage and transfer failures.
	CodeTransferFailed ErrorCode = "TransferFailed"
	CodeUpdateFailed   ErrorCode = "UpdateFailed"
	CodeDeleteFailed   ErrorCode = "DeleteFailed"
	CodeCountFailed    ErrorCode = "CountFailed"
	CodeSeqFailed      ErrorCode = "SeqFailed"
	CodeDuplicateCode  ErrorCode = "DuplicateCode"
)

// DomainError is a coded, human-readable engine error. Two DomainErrors match
// under errors.Is when their codes are equal, so handlers can return instances
// with contextual messages while callers compare against the sentinels below.
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// NewDomainError creates a DomainError with the given code and message.
func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// NewDomainErrorWithCause creates a DomainError wrapping an underlying cause.
func NewDomainErrorWithCause(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %s)", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/errors.As chains.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any other DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	var other *DomainError
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// CodeOf extracts the ErrorCode from err, walking the wrap chain.
// Returns CodeValidationFailed for uncoded errors so the boundary always
// has something to serialize.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	if errors.Is(err, ErrObjectNotFound) {
		return CodeNotFound
	}
	return CodeValidationFailed
}

// Sentinels for errors.Is comparisons. Handlers may return these directly or
// wrap richer instances with the same code.
var (
	ErrUnauthenticated = NewDomainError(CodeUnauthenticated, "caller identity is missing")
	ErrForbidden       = NewDomainError(CodeForbidden, "caller has no rights over this shipment")
	ErrNoOrganisation  = NewDomainError(CodeNoOrganisation, "caller has no organisation")

	ErrNotDraft   = NewDomainError(CodeNotDraft, "shipment is not in draft status")
	ErrNotPending = NewDomainError(CodeNotPending, "shipment is not in pending status")

	ErrSameOrg         = NewDomainError(CodeSameOrg, "sender and receiver organisations must differ")
	ErrReasonRequired  = NewDomainError(CodeReasonRequired, "a rejection reason is required")
	ErrNoPackages      = NewDomainError(CodeNoPackages, "shipment has no packages")
	ErrNoValidPackages = NewDomainError(CodeNoValidPackages, "none of the selected packages are available to you")

	ErrOrgNotFound    = NewDomainError(CodeOrgNotFound, "organisation not found")
	ErrPalletNotFound = NewDomainError(CodePalletNotFound, "pallet not found")
	ErrWrongShipment  = NewDomainError(CodeWrongShipment, "entity does not belong to this shipment")

	ErrTransferFailed = NewDomainError(CodeTransferFailed, "package ownership transfer failed, nothing was moved")
	ErrUpdateFailed   = NewDomainError(CodeUpdateFailed, "shipment update failed")
	ErrDeleteFailed   = NewDomainError(CodeDeleteFailed, "delete failed")
	ErrCountFailed    = NewDomainError(CodeCountFailed, "shipment count failed")
	ErrSeqFailed      = NewDomainError(CodeSeqFailed, "sequence number generation failed")
	ErrDuplicateCode  = NewDomainError(CodeDuplicateCode, "shipment code already exists")
)
