// Package errs provides standardized error types for the logistics application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for input validation and for the shipment lifecycle:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: invalid input
//   - ObjectNotFoundError, ObjectExistsError: identity and uniqueness failures
//   - InvalidTransitionError: a status change the state machine does not allow
//   - CapacityExceededError: a carrier without a free active-shipment slot
//   - OutOfOrderEventError, DuplicateEventError: event log ordering rules
//   - InvariantViolationError: stored state that breaks a domain invariant
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions (with and without cause where a cause makes sense)
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel, so errors.Is classifies wrapped errors
package errs
