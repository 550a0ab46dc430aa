package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the operation is not legal in the aggregate's
// current state (e.g. paying an installment that is no longer open). The
// operation was a no-op: nothing was mutated.
var ErrConflict = errors.New("state conflict")

// ErrForbidden indicates a failed privileged-operation authorization check.
var ErrForbidden = errors.New("operation not authorized")

// ErrInsufficientFunds indicates that an account or the company cash book does
// not hold enough balance for the requested payout.
var ErrInsufficientFunds = errors.New("insufficient funds")
