// Package errs provides the typed errors shared by every layer of the restaurant service.
//
// Each error type follows the same pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired) used with errors.Is
//   - A struct type carrying the details of the failure
//   - Constructor functions with and without cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// The sentinels form the error taxonomy the HTTP adapter maps to status codes:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange: user-correctable input problems
//   - ErrObjectNotFound: an unknown order, chef, table or menu item
//   - ErrConflict: a reservation, limit or in-use rule was violated
//   - ErrCapacity: no active chef can take the order
package errs
