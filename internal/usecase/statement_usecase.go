package usecase

import (
	"context"

	"github.com/iho/gopix/internal/domain"
)

// StatementUseCase handles statement reads. Entries are written only by
// the transfer protocol.
type StatementUseCase struct {
	statementRepo StatementRepository
}

// NewStatementUseCase creates a new StatementUseCase.
func NewStatementUseCase(statementRepo StatementRepository) *StatementUseCase {
	return &StatementUseCase{
		statementRepo: statementRepo,
	}
}

// ListByAccountInput represents input for listing statement entries.
type ListByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListByAccount lists statement entries for an account, newest first.
// An account with no history yields an empty list, not an error.
func (uc *StatementUseCase) ListByAccount(ctx context.Context, input ListByAccountInput) ([]*domain.StatementEntry, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	// Postgres rejects a negative OFFSET.
	if input.Offset < 0 {
		input.Offset = 0
	}

	return uc.statementRepo.ListByAccount(ctx, input.AccountID, input.Limit, input.Offset)
}

// GetByTransfer returns the entries sharing one correlation reference.
func (uc *StatementUseCase) GetByTransfer(ctx context.Context, transferID string) ([]*domain.StatementEntry, error) {
	return uc.statementRepo.GetByTransfer(ctx, transferID)
}
