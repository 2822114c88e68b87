package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// CheckConsistency sums journal entries by direction across the whole
// ledger.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (totalDebits decimal.Decimal, totalCredits decimal.Decimal, err error) {
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE direction = 'debit'), 0),
			COALESCE(SUM(amount) FILTER (WHERE direction = 'credit'), 0)
		FROM statement_entries
	`

	var debits, credits pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query).Scan(&debits, &credits); err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(debits), numericToDecimal(credits), nil
}
