// Package errs provides the typed errors used across the order workflow service.
//
// Each error type follows the same shape:
//   - a sentinel (e.g. ErrObjectNotFound) returned by Unwrap so errors.Is works
//   - a struct carrying the details plus an optional Cause
//   - New... and New...WithCause constructors
//
// The workflow taxonomy maps onto these types:
//   - ObjectNotFoundError: unknown order or notification id
//   - PermissionDeniedError: role not entitled to the requested transition
//   - ConflictError: order status changed between read and write (retryable)
//   - StorageError: persistence failure, nothing audited or notified
//   - NotificationDeliveryError: best-effort side channel failure, logged only
//
// Validation failures use ValueIsRequiredError, ValueIsInvalidError and
// ValueIsOutOfRangeError.
package errs
