package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gopix/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByIDsForUpdate locks the rows in ascending ID order regardless of
	// input order, so concurrent transfers on the same pair cannot deadlock.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// StatementRepository defines data access for statement entries.
// The statement is append-only: there is no update or delete.
type StatementRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.StatementEntry) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.StatementEntry, error)
	GetByTransfer(ctx context.Context, transferID string) ([]*domain.StatementEntry, error)
}

// PixKeyRepository defines data access for pix key aliases.
type PixKeyRepository interface {
	// Insert fails with domain.ErrDuplicateAlias if the alias exists
	// anywhere in the registry. Check-then-insert is atomic: uniqueness
	// is backed by a database constraint, not an application-level read.
	Insert(ctx context.Context, key *domain.PixKey) error
	Delete(ctx context.Context, accountID, alias string) error
	GetByAlias(ctx context.Context, alias string) (*domain.PixKey, error)
	ListByAccount(ctx context.Context, accountID string) ([]*domain.PixKey, error)
}

// LedgerRepository defines data access for ledger-wide operations.
type LedgerRepository interface {
	CheckConsistency(ctx context.Context) (totalDebits, totalCredits decimal.Decimal, err error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// AliasResolver resolves a pix key alias to its owning account ID.
type AliasResolver interface {
	Resolve(ctx context.Context, alias string) (string, error)
}

// Retrier re-runs an operation on transient storage errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
