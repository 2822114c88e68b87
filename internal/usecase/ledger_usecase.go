package usecase

import (
	"context"
	"errors"
)

var (
	// ErrInconsistentLedger is returned when the sum of debit entries
	// does not equal the sum of credit entries across deposits.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: debits do not equal credits")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency verifies double-entry conservation: every transfer
// wrote a debit and a credit of equal amount, so the total debited can
// never exceed the total credited. Deposits are credit-only, which is
// why the comparison is <=, not ==.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	totalDebits, totalCredits, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return false, err
	}

	if totalDebits.GreaterThan(totalCredits) {
		return false, ErrInconsistentLedger
	}

	return true, nil
}
