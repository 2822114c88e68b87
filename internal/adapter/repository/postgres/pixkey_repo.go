package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gopix/internal/domain"
)

const pgErrUniqueViolation = "23505"

// PixKeyRepository implements usecase.PixKeyRepository.
type PixKeyRepository struct {
	pool *pgxpool.Pool
}

// NewPixKeyRepository creates a new PixKeyRepository.
func NewPixKeyRepository(pool *pgxpool.Pool) *PixKeyRepository {
	return &PixKeyRepository{pool: pool}
}

// Insert binds an alias to an account. The alias column is the primary
// key, so a concurrent duplicate registration loses with a unique
// violation rather than a read-then-write race.
func (r *PixKeyRepository) Insert(ctx context.Context, key *domain.PixKey) error {
	query := `
		INSERT INTO pix_keys (alias, account_id, created_at)
		VALUES ($1, $2, $3)
	`

	_, err := r.pool.Exec(ctx, query,
		key.Alias,
		key.AccountID,
		timeToPgTimestamptz(key.CreatedAt),
	)

	if isUniqueViolation(err) {
		return domain.ErrDuplicateAlias
	}

	return err
}

// Delete removes an alias owned by accountID. Matching both columns
// means an account cannot revoke an alias it does not hold.
func (r *PixKeyRepository) Delete(ctx context.Context, accountID, alias string) error {
	query := `DELETE FROM pix_keys WHERE account_id = $1 AND alias = $2`

	tag, err := r.pool.Exec(ctx, query, accountID, alias)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrAliasNotFound
	}

	return nil
}

// GetByAlias retrieves a pix key by its alias.
func (r *PixKeyRepository) GetByAlias(ctx context.Context, alias string) (*domain.PixKey, error) {
	query := `
		SELECT alias, account_id, created_at
		FROM pix_keys
		WHERE alias = $1
	`

	var (
		key       domain.PixKey
		createdAt pgtype.Timestamptz
	)

	err := r.pool.QueryRow(ctx, query, alias).Scan(&key.Alias, &key.AccountID, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrAliasNotFound
	}
	if err != nil {
		return nil, err
	}

	key.CreatedAt = createdAt.Time

	return &key, nil
}

// ListByAccount retrieves all pix keys held by an account.
func (r *PixKeyRepository) ListByAccount(ctx context.Context, accountID string) ([]*domain.PixKey, error) {
	query := `
		SELECT alias, account_id, created_at
		FROM pix_keys
		WHERE account_id = $1
		ORDER BY created_at, alias
	`

	rows, err := r.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []*domain.PixKey
	for rows.Next() {
		var (
			key       domain.PixKey
			createdAt pgtype.Timestamptz
		)

		if err := rows.Scan(&key.Alias, &key.AccountID, &createdAt); err != nil {
			return nil, err
		}

		key.CreatedAt = createdAt.Time
		keys = append(keys, &key)
	}

	return keys, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation
}
