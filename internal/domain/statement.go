package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction marks which side of a transfer a statement entry records.
type Direction string

const (
	DirectionDebit  Direction = "debit"
	DirectionCredit Direction = "credit"
)

// StatementEntry is an immutable record of one side of a completed
// movement. The two entries produced by a transfer share a TransferID.
type StatementEntry struct {
	ID          string
	AccountID   string
	TransferID  string
	Description string
	Amount      decimal.Decimal
	Direction   Direction
	CreatedAt   time.Time
}
