// Package errs provides standardized error types for the shipment engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// Two families of errors live here:
//
//   - Generic value/object errors following a sentinel + struct + constructor
//     pattern: ValueIsRequiredError, ValueIsInvalidError, ObjectNotFoundError.
//     Each has a sentinel error variable, constructor functions with and without
//     cause, an Error() method, and an Unwrap() method so errors.Is and errors.As
//     work across wrapping boundaries.
//
//   - DomainError, a coded error carrying one of the engine's ErrorCode values
//     (Forbidden, NotDraft, NotPending, TransferFailed, ...). Every public
//     operation of the engine resolves its failure to exactly one code, and the
//     HTTP boundary serializes it as a {code, error} envelope. Codes are compared
//     with errors.Is against the package-level sentinels (ErrNotDraft,
//     ErrForbidden, ...) or extracted with CodeOf.
//
// Nothing in the engine is allowed to escape an operation boundary as a panic;
// every failure is caught and returned as one of these types.
package errs
