package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer represents a money movement between two accounts.
type Transfer struct {
	ID            string
	FromAccountID string
	ToAccountID   string
	Description   string
	Amount        decimal.Decimal
	CreatedAt     time.Time
}

// Validate validates transfer request.
func (t *Transfer) Validate() error {
	if t.FromAccountID == t.ToAccountID {
		return ErrSameAccount
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	return nil
}

// TransferReceipt is returned to the caller after a transfer commits.
// TransferID doubles as the correlation reference linking the debit
// and credit statement entries.
type TransferReceipt struct {
	TransferID  string
	CreatedAt   time.Time
	FromBalance decimal.Decimal
}
