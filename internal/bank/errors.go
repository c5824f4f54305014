package bank

import (
	"errors"
	"fmt"
)

// Domain errors. Every engine failure wraps one of the three base
// sentinels so callers can classify with errors.Is.
var (
	// ErrNotFound means a referenced holder or account does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller may not perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidArgument means a value is outside policy bounds or malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrFraudSuspected is the fraud-screen rejection; it classifies as forbidden.
	ErrFraudSuspected = fmt.Errorf("%w: this transaction may be fraudulent", ErrForbidden)

	// ErrCreditLimitExceeded rejects a withdrawal that would push a
	// credit-card balance below the negated credit limit.
	ErrCreditLimitExceeded = fmt.Errorf("%w: credit limit exceeded", ErrForbidden)
)
