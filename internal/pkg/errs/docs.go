// Package errs provides standardized error types for the order desk service.
// Every error type wraps a sentinel so callers classify failures with errors.Is
// and read the details with errors.As.
//
// The package includes:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value is malformed or not one of the accepted values
//   - ValueIsOutOfRangeError: a value is outside of its allowed bounds
//   - ObjectNotFoundError: an object cannot be found
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method returning the sentinel
package errs
