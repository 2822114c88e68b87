package domain

import (
	"errors"
	"fmt"
)

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Transfer errors
	ErrSameAccount        = errors.New("cannot transfer to same account")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidDescription = errors.New("invalid description")
	ErrTransferFailed     = errors.New("transfer failed")

	// Pix key errors
	ErrInvalidAlias   = errors.New("invalid pix key")
	ErrDuplicateAlias = errors.New("pix key already registered")
	ErrAliasNotFound  = errors.New("pix key not found")
)

// TransferFailed wraps a storage fault so callers can match both
// ErrTransferFailed and the underlying cause with errors.Is/As.
func TransferFailed(cause error) error {
	return fmt.Errorf("%w: %w", ErrTransferFailed, cause)
}

// IsBusinessError reports whether err is one of the domain error kinds,
// as opposed to an infrastructure fault.
func IsBusinessError(err error) bool {
	for _, target := range []error{
		ErrAccountNotFound,
		ErrInsufficientFunds,
		ErrSameAccount,
		ErrInvalidAmount,
		ErrInvalidDescription,
		ErrInvalidAlias,
		ErrDuplicateAlias,
		ErrAliasNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}
