package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gopix/internal/domain"
	"github.com/iho/gopix/internal/usecase"
)

// StatementRepository implements usecase.StatementRepository.
type StatementRepository struct {
	pool *pgxpool.Pool
}

// NewStatementRepository creates a new StatementRepository.
func NewStatementRepository(pool *pgxpool.Pool) *StatementRepository {
	return &StatementRepository{pool: pool}
}

// Create inserts a statement entry inside tx.
func (r *StatementRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.StatementEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO statement_entries (id, account_id, transfer_id, description, amount, direction, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.AccountID,
		entry.TransferID,
		entry.Description,
		decimalToNumeric(entry.Amount),
		string(entry.Direction),
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// ListByAccount retrieves an account's entries, newest first. The id
// tiebreaker keeps the two legs of one transfer in a stable order.
func (r *StatementRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.StatementEntry, error) {
	query := `
		SELECT id, account_id, transfer_id, description, amount, direction, created_at
		FROM statement_entries
		WHERE account_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// GetByTransfer retrieves the entries sharing one correlation reference.
func (r *StatementRepository) GetByTransfer(ctx context.Context, transferID string) ([]*domain.StatementEntry, error) {
	query := `
		SELECT id, account_id, transfer_id, description, amount, direction, created_at
		FROM statement_entries
		WHERE transfer_id = $1
		ORDER BY direction, id
	`

	rows, err := r.pool.Query(ctx, query, transferID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]*domain.StatementEntry, error) {
	var entries []*domain.StatementEntry
	for rows.Next() {
		var (
			entry     domain.StatementEntry
			amount    pgtype.Numeric
			direction string
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&entry.ID,
			&entry.AccountID,
			&entry.TransferID,
			&entry.Description,
			&amount,
			&direction,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entry.Amount = numericToDecimal(amount)
		entry.Direction = domain.Direction(direction)
		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
