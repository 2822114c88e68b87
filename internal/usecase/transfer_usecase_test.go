package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gopix/internal/domain"
	"github.com/iho/gopix/internal/usecase"
	"github.com/iho/gopix/internal/usecase/mocks"
)

func newTransferFixture() (*usecase.TransferUseCase, *mocks.MockAccountRepository, *mocks.MockStatementRepository, *mocks.MockTransactionManager, *mocks.MockAliasResolver) {
	accRepo := mocks.NewMockAccountRepository()
	stmtRepo := mocks.NewMockStatementRepository()
	txMgr := mocks.NewMockTransactionManager()
	resolver := &mocks.MockAliasResolver{}
	idGen := mocks.NewMockIDGenerator()

	uc := usecase.NewTransferUseCase(txMgr, accRepo, stmtRepo, resolver, idGen, nil)

	return uc, accRepo, stmtRepo, txMgr, resolver
}

func seedAccount(repo *mocks.MockAccountRepository, id string, balance int64) {
	now := time.Now().UTC()
	repo.Seed(&domain.Account{
		ID:        id,
		Name:      id,
		Balance:   decimal.NewFromInt(balance),
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func TestTransferToAccount(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(*mocks.MockAccountRepository, *mocks.MockStatementRepository)
		input   usecase.TransferInput
		wantErr error
	}{
		{
			name: "successful transfer",
			setup: func(accRepo *mocks.MockAccountRepository, _ *mocks.MockStatementRepository) {
				seedAccount(accRepo, "acc-1", 100)
				seedAccount(accRepo, "acc-2", 0)
			},
			input: usecase.TransferInput{
				FromAccountID: "acc-1",
				ToAccountID:   "acc-2",
				Amount:        decimal.NewFromInt(40),
				Description:   "rent",
			},
		},
		{
			name:  "same account rejected before any mutation",
			setup: func(accRepo *mocks.MockAccountRepository, _ *mocks.MockStatementRepository) {},
			input: usecase.TransferInput{
				FromAccountID: "acc-1",
				ToAccountID:   "acc-1",
				Amount:        decimal.NewFromInt(10),
			},
			wantErr: domain.ErrSameAccount,
		},
		{
			name:  "zero amount rejected",
			setup: func(accRepo *mocks.MockAccountRepository, _ *mocks.MockStatementRepository) {},
			input: usecase.TransferInput{
				FromAccountID: "acc-1",
				ToAccountID:   "acc-2",
				Amount:        decimal.Zero,
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			// Sub-cent amounts would be rounded by the cent-precision
			// storage columns, creating money between the two legs.
			name: "sub-cent amount rejected",
			setup: func(accRepo *mocks.MockAccountRepository, _ *mocks.MockStatementRepository) {
				seedAccount(accRepo, "acc-1", 100)
				seedAccount(accRepo, "acc-2", 0)
			},
			input: usecase.TransferInput{
				FromAccountID: "acc-1",
				ToAccountID:   "acc-2",
				Amount:        decimal.RequireFromString("10.005"),
			},
			wantErr: domain.ErrInvalidAmount,
		},
		{
			name: "insufficient funds",
			setup: func(accRepo *mocks.MockAccountRepository, _ *mocks.MockStatementRepository) {
				seedAccount(accRepo, "acc-1", 10)
				seedAccount(accRepo, "acc-2", 0)
			},
			input: usecase.TransferInput{
				FromAccountID: "acc-1",
				ToAccountID:   "acc-2",
				Amount:        decimal.NewFromInt(50),
			},
			wantErr: domain.ErrInsufficientFunds,
		},
		{
			name: "unknown recipient",
			setup: func(accRepo *mocks.MockAccountRepository, _ *mocks.MockStatementRepository) {
				seedAccount(accRepo, "acc-1", 100)
			},
			input: usecase.TransferInput{
				FromAccountID: "acc-1",
				ToAccountID:   "ghost",
				Amount:        decimal.NewFromInt(10),
			},
			wantErr: domain.ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, accRepo, stmtRepo, _, _ := newTransferFixture()
			tt.setup(accRepo, stmtRepo)

			receipt, err := uc.TransferToAccount(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if len(stmtRepo.All()) != 0 {
					t.Error("failed transfer must leave no statement entries")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if receipt == nil || receipt.TransferID == "" {
				t.Fatal("expected receipt with correlation reference")
			}
		})
	}
}

func TestTransferMovesBalancesAndJournalsBothSides(t *testing.T) {
	uc, accRepo, stmtRepo, txMgr, _ := newTransferFixture()
	seedAccount(accRepo, "acc-x", 100)
	seedAccount(accRepo, "acc-y", 0)

	receipt, err := uc.TransferToAccount(context.Background(), usecase.TransferInput{
		FromAccountID: "acc-x",
		ToAccountID:   "acc-y",
		Amount:        decimal.NewFromInt(40),
		Description:   "rent",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !receipt.FromBalance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected payer balance 60 in receipt, got %s", receipt.FromBalance)
	}

	from, _ := accRepo.GetByID(context.Background(), "acc-x")
	to, _ := accRepo.GetByID(context.Background(), "acc-y")

	if !from.Balance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected payer balance 60, got %s", from.Balance)
	}
	if !to.Balance.Equal(decimal.NewFromInt(40)) {
		t.Errorf("expected recipient balance 40, got %s", to.Balance)
	}

	entries := stmtRepo.All()
	if len(entries) != 2 {
		t.Fatalf("expected exactly 2 statement entries, got %d", len(entries))
	}

	var debit, credit *domain.StatementEntry
	for _, e := range entries {
		switch e.Direction {
		case domain.DirectionDebit:
			debit = e
		case domain.DirectionCredit:
			credit = e
		}
	}

	if debit == nil || credit == nil {
		t.Fatal("expected one debit and one credit entry")
	}
	if debit.TransferID != credit.TransferID || debit.TransferID != receipt.TransferID {
		t.Error("entries must share the receipt's correlation reference")
	}
	if !debit.Amount.Equal(credit.Amount) {
		t.Error("debit and credit amounts must be equal")
	}
	if !debit.CreatedAt.Equal(credit.CreatedAt) {
		t.Error("entries must share the transfer timestamp")
	}
	if debit.AccountID != "acc-x" || credit.AccountID != "acc-y" {
		t.Error("entries attached to wrong accounts")
	}
	if debit.Description != "rent" || credit.Description != "rent" {
		t.Error("direct transfers carry the caller description on both sides")
	}

	if len(txMgr.Transactions) != 1 || !txMgr.Transactions[0].Committed {
		t.Error("expected exactly one committed transaction")
	}
}

func TestTransferStorageFaultRollsBack(t *testing.T) {
	uc, accRepo, stmtRepo, txMgr, _ := newTransferFixture()
	seedAccount(accRepo, "acc-1", 100)
	seedAccount(accRepo, "acc-2", 0)

	storageErr := errors.New("connection reset")
	stmtRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.StatementEntry) error {
		return storageErr
	}

	_, err := uc.TransferToAccount(context.Background(), usecase.TransferInput{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        decimal.NewFromInt(10),
	})

	if !errors.Is(err, domain.ErrTransferFailed) {
		t.Fatalf("expected ErrTransferFailed, got %v", err)
	}
	if !errors.Is(err, storageErr) {
		t.Error("expected wrapped cause to be matchable")
	}

	if len(txMgr.Transactions) != 1 {
		t.Fatalf("expected one transaction, got %d", len(txMgr.Transactions))
	}
	if txMgr.Transactions[0].Committed {
		t.Error("transaction must not commit on storage fault")
	}
	if !txMgr.Transactions[0].RolledBack {
		t.Error("transaction must roll back on storage fault")
	}
}

func TestTransferByAlias(t *testing.T) {
	uc, accRepo, stmtRepo, _, resolver := newTransferFixture()
	seedAccount(accRepo, "acc-x", 100)
	seedAccount(accRepo, "acc-a", 0)

	resolver.ResolveFunc = func(ctx context.Context, alias string) (string, error) {
		if alias == "alice@pay" {
			return "acc-a", nil
		}
		return "", domain.ErrAliasNotFound
	}

	receipt, err := uc.TransferByAlias(context.Background(), usecase.PixTransferInput{
		FromAccountID: "acc-x",
		Alias:         "alice@pay",
		Amount:        decimal.NewFromInt(5),
		Description:   "gift",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	to, _ := accRepo.GetByID(context.Background(), "acc-a")
	if !to.Balance.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected resolved recipient balance 5, got %s", to.Balance)
	}
	if !receipt.FromBalance.Equal(decimal.NewFromInt(95)) {
		t.Errorf("expected payer balance 95, got %s", receipt.FromBalance)
	}

	for _, e := range stmtRepo.All() {
		switch e.Direction {
		case domain.DirectionDebit:
			if e.Description != "gift" {
				t.Errorf("payer side keeps caller description, got %q", e.Description)
			}
		case domain.DirectionCredit:
			if e.Description != "pix received from acc-x" {
				t.Errorf("recipient side gets derived receipt description, got %q", e.Description)
			}
		}
	}
}

func TestTransferByAliasUnknownAlias(t *testing.T) {
	uc, accRepo, _, txMgr, _ := newTransferFixture()
	seedAccount(accRepo, "acc-x", 100)

	_, err := uc.TransferByAlias(context.Background(), usecase.PixTransferInput{
		FromAccountID: "acc-x",
		Alias:         "nobody@pay",
		Amount:        decimal.NewFromInt(5),
	})

	if !errors.Is(err, domain.ErrAliasNotFound) {
		t.Fatalf("expected ErrAliasNotFound, got %v", err)
	}
	if len(txMgr.Transactions) != 0 {
		t.Error("no transaction may start when alias resolution fails")
	}
}

func TestDeposit(t *testing.T) {
	uc, accRepo, stmtRepo, _, _ := newTransferFixture()
	seedAccount(accRepo, "acc-1", 10)

	receipt, err := uc.Deposit(context.Background(), usecase.DepositInput{
		AccountID:   "acc-1",
		Amount:      decimal.NewFromInt(25),
		Description: "salary",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !receipt.FromBalance.Equal(decimal.NewFromInt(35)) {
		t.Errorf("expected balance 35, got %s", receipt.FromBalance)
	}

	entries := stmtRepo.All()
	if len(entries) != 1 {
		t.Fatalf("expected single credit entry, got %d", len(entries))
	}
	if entries[0].Direction != domain.DirectionCredit {
		t.Error("deposit entry must be a credit")
	}
	if entries[0].Description != "salary" {
		t.Errorf("unexpected description %q", entries[0].Description)
	}
}

func TestDepositUnknownAccount(t *testing.T) {
	uc, _, _, _, _ := newTransferFixture()

	_, err := uc.Deposit(context.Background(), usecase.DepositInput{
		AccountID: "ghost",
		Amount:    decimal.NewFromInt(5),
	})

	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestOppositeTransfersNetToZero(t *testing.T) {
	uc, accRepo, stmtRepo, _, _ := newTransferFixture()
	seedAccount(accRepo, "acc-a", 100)
	seedAccount(accRepo, "acc-b", 100)

	for _, pair := range [][2]string{{"acc-a", "acc-b"}, {"acc-b", "acc-a"}} {
		_, err := uc.TransferToAccount(context.Background(), usecase.TransferInput{
			FromAccountID: pair[0],
			ToAccountID:   pair[1],
			Amount:        decimal.NewFromInt(30),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	a, _ := accRepo.GetByID(context.Background(), "acc-a")
	b, _ := accRepo.GetByID(context.Background(), "acc-b")

	if !a.Balance.Equal(decimal.NewFromInt(100)) || !b.Balance.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected both balances back at 100, got %s and %s", a.Balance, b.Balance)
	}
	if len(stmtRepo.All()) != 4 {
		t.Errorf("expected 4 statement entries, got %d", len(stmtRepo.All()))
	}
}
