package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gopix/internal/domain"
	"github.com/iho/gopix/internal/usecase"
	"github.com/iho/gopix/internal/usecase/mocks"
)

func seedEntries(t *testing.T, repo *mocks.MockStatementRepository) {
	t.Helper()

	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []*domain.StatementEntry{
		{ID: "e1", AccountID: "acc-1", TransferID: "t1", Direction: domain.DirectionDebit, Amount: decimal.NewFromInt(10), CreatedAt: base},
		{ID: "e2", AccountID: "acc-2", TransferID: "t1", Direction: domain.DirectionCredit, Amount: decimal.NewFromInt(10), CreatedAt: base},
		{ID: "e3", AccountID: "acc-1", TransferID: "t2", Direction: domain.DirectionCredit, Amount: decimal.NewFromInt(5), CreatedAt: base.Add(time.Minute)},
	}
	for _, e := range entries {
		if err := repo.Create(context.Background(), nil, e); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestStatementListByAccountNewestFirst(t *testing.T) {
	repo := mocks.NewMockStatementRepository()
	seedEntries(t, repo)
	uc := usecase.NewStatementUseCase(repo)

	entries, err := uc.ListByAccount(context.Background(), usecase.ListByAccountInput{AccountID: "acc-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries for acc-1, got %d", len(entries))
	}
	if entries[0].ID != "e3" || entries[1].ID != "e1" {
		t.Errorf("expected newest first, got %s then %s", entries[0].ID, entries[1].ID)
	}
}

func TestStatementListByAccountEmptyHistory(t *testing.T) {
	repo := mocks.NewMockStatementRepository()
	uc := usecase.NewStatementUseCase(repo)

	entries, err := uc.ListByAccount(context.Background(), usecase.ListByAccountInput{AccountID: "acc-9"})
	if err != nil {
		t.Fatalf("empty history is not an error, got %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestStatementListClampsPagination(t *testing.T) {
	repo := mocks.NewMockStatementRepository()
	var gotLimit, gotOffset int
	repo.ListByAccountFunc = func(ctx context.Context, accountID string, limit, offset int) ([]*domain.StatementEntry, error) {
		gotLimit = limit
		gotOffset = offset
		return nil, nil
	}
	uc := usecase.NewStatementUseCase(repo)

	if _, err := uc.ListByAccount(context.Background(), usecase.ListByAccountInput{AccountID: "acc-1", Limit: -3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 20 {
		t.Errorf("expected default limit 20, got %d", gotLimit)
	}

	if _, err := uc.ListByAccount(context.Background(), usecase.ListByAccountInput{AccountID: "acc-1", Limit: 1000}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 {
		t.Errorf("expected limit capped at 100, got %d", gotLimit)
	}

	// A negative offset would reach OFFSET in the query, which
	// postgres rejects.
	if _, err := uc.ListByAccount(context.Background(), usecase.ListByAccountInput{AccountID: "acc-1", Offset: -5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotOffset != 0 {
		t.Errorf("expected negative offset clamped to 0, got %d", gotOffset)
	}
}

func TestStatementGetByTransfer(t *testing.T) {
	repo := mocks.NewMockStatementRepository()
	seedEntries(t, repo)
	uc := usecase.NewStatementUseCase(repo)

	entries, err := uc.GetByTransfer(context.Background(), "t1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected both legs of t1, got %d", len(entries))
	}
	for _, e := range entries {
		if e.TransferID != "t1" {
			t.Errorf("entry %s has wrong transfer id %s", e.ID, e.TransferID)
		}
	}
}
