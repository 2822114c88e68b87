package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gopix/internal/domain"
)

// TransferUseCase executes the atomic transfer protocol: debit, credit
// and the two statement entries commit together or not at all.
type TransferUseCase struct {
	txManager     TransactionManager
	accountRepo   AccountRepository
	statementRepo StatementRepository
	resolver      AliasResolver
	idGen         IDGenerator
	retrier       Retrier
}

// NewTransferUseCase creates a new TransferUseCase. retrier may be nil,
// in which case transient storage errors are not retried.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	statementRepo StatementRepository,
	resolver AliasResolver,
	idGen IDGenerator,
	retrier Retrier,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:     txManager,
		accountRepo:   accountRepo,
		statementRepo: statementRepo,
		resolver:      resolver,
		idGen:         idGen,
		retrier:       retrier,
	}
}

// TransferInput represents input for a direct transfer.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
	Description   string
}

// PixTransferInput represents input for an alias-addressed transfer.
type PixTransferInput struct {
	FromAccountID string
	Alias         string
	Amount        decimal.Decimal
	Description   string
}

// DepositInput represents input for an external deposit.
type DepositInput struct {
	AccountID   string
	Amount      decimal.Decimal
	Description string
}

// TransferToAccount moves amount between two accounts and journals both
// sides under one correlation reference.
func (uc *TransferUseCase) TransferToAccount(ctx context.Context, input TransferInput) (*domain.TransferReceipt, error) {
	return uc.transfer(ctx, input, input.Description)
}

// TransferByAlias resolves the recipient through the pix key registry,
// then proceeds identically to TransferToAccount. The recipient side of
// the statement gets a derived receipt description.
func (uc *TransferUseCase) TransferByAlias(ctx context.Context, input PixTransferInput) (*domain.TransferReceipt, error) {
	toID, err := uc.resolver.Resolve(ctx, input.Alias)
	if err != nil {
		return nil, err
	}

	receiptDescription := fmt.Sprintf("pix received from %s", input.FromAccountID)

	return uc.transfer(ctx, TransferInput{
		FromAccountID: input.FromAccountID,
		ToAccountID:   toID,
		Amount:        input.Amount,
		Description:   input.Description,
	}, receiptDescription)
}

func (uc *TransferUseCase) transfer(ctx context.Context, input TransferInput, receiptDescription string) (*domain.TransferReceipt, error) {
	// Preconditions are checked before any mutation.
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	var receipt *domain.TransferReceipt

	err := uc.withRetry(ctx, func() error {
		var err error
		receipt, err = uc.executeTransfer(ctx, input, receiptDescription)
		return err
	})
	if err != nil {
		return nil, wrapStorageError(err)
	}

	return receipt, nil
}

// executeTransfer runs one attempt of the transfer protocol inside a
// single transaction. The deferred rollback is a no-op after commit.
func (uc *TransferUseCase) executeTransfer(ctx context.Context, input TransferInput, receiptDescription string) (*domain.TransferReceipt, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Lock both rows in ascending ID order (deadlock prevention).
	ids := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(ids)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(ids) {
		return nil, domain.ErrAccountNotFound
	}

	var fromAccount, toAccount *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.FromAccountID:
			fromAccount = a
		case input.ToAccountID:
			toAccount = a
		}
	}

	if fromAccount == nil || toAccount == nil {
		return nil, domain.ErrAccountNotFound
	}

	if err := fromAccount.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	transferID := uc.idGen.Generate()

	fromBalance := fromAccount.ApplyDebit(input.Amount)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, fromAccount.ID, fromBalance, now); err != nil {
		return nil, err
	}

	toBalance := toAccount.ApplyCredit(input.Amount)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, toAccount.ID, toBalance, now); err != nil {
		return nil, err
	}

	debitEntry := &domain.StatementEntry{
		ID:          uc.idGen.Generate(),
		AccountID:   fromAccount.ID,
		TransferID:  transferID,
		Description: input.Description,
		Amount:      input.Amount,
		Direction:   domain.DirectionDebit,
		CreatedAt:   now,
	}

	if err := uc.statementRepo.Create(ctx, tx, debitEntry); err != nil {
		return nil, err
	}

	creditEntry := &domain.StatementEntry{
		ID:          uc.idGen.Generate(),
		AccountID:   toAccount.ID,
		TransferID:  transferID,
		Description: receiptDescription,
		Amount:      input.Amount,
		Direction:   domain.DirectionCredit,
		CreatedAt:   now,
	}

	if err := uc.statementRepo.Create(ctx, tx, creditEntry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.TransferReceipt{
		TransferID:  transferID,
		CreatedAt:   now,
		FromBalance: fromBalance,
	}, nil
}

// Deposit credits an account from outside the ledger and journals a
// single credit entry, under the same atomicity rules as a transfer.
func (uc *TransferUseCase) Deposit(ctx context.Context, input DepositInput) (*domain.TransferReceipt, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return nil, err
	}

	var receipt *domain.TransferReceipt

	err := uc.withRetry(ctx, func() error {
		var err error
		receipt, err = uc.executeDeposit(ctx, input)
		return err
	})
	if err != nil {
		return nil, wrapStorageError(err)
	}

	return receipt, nil
}

func (uc *TransferUseCase) executeDeposit(ctx context.Context, input DepositInput) (*domain.TransferReceipt, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, []string{input.AccountID})
	if err != nil {
		return nil, err
	}

	if len(accounts) != 1 {
		return nil, domain.ErrAccountNotFound
	}

	account := accounts[0]
	now := time.Now().UTC()
	depositID := uc.idGen.Generate()

	balance := account.ApplyCredit(input.Amount)
	if err := uc.accountRepo.UpdateBalance(ctx, tx, account.ID, balance, now); err != nil {
		return nil, err
	}

	entry := &domain.StatementEntry{
		ID:          uc.idGen.Generate(),
		AccountID:   account.ID,
		TransferID:  depositID,
		Description: input.Description,
		Amount:      input.Amount,
		Direction:   domain.DirectionCredit,
		CreatedAt:   now,
	}

	if err := uc.statementRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &domain.TransferReceipt{
		TransferID:  depositID,
		CreatedAt:   now,
		FromBalance: balance,
	}, nil
}

func (uc *TransferUseCase) withRetry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

// wrapStorageError marks infrastructure faults as ErrTransferFailed so
// callers know the transaction did not commit. Business errors pass
// through untouched.
func wrapStorageError(err error) error {
	if err == nil || domain.IsBusinessError(err) {
		return err
	}

	return domain.TransferFailed(err)
}
