// Package errs provides standardized error types for the fulfillment core.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package covers the error taxonomy of the fulfillment operations:
//   - ValueIsRequiredError / ValueIsInvalidError: validation failures
//   - NotAuthorizedError: actor/role mismatches
//   - ConflictError: operations that are not legal from the current state
//   - ObjectNotFoundError: missing orders or handover events
//   - VersionIsInvalidError: optimistic concurrency (version check) failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g. ErrConflict)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for errors.Is classification
//
// Callers classify errors with errors.Is against the sentinels; the HTTP
// adapter maps the classes onto status codes (400/403/404/409).
package errs
