package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/gopix/internal/usecase"
)

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name string `json:"name"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{Name: r.Name}
}

// CreateTransferRequest represents a request to transfer to an account ID.
type CreateTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		Description:   r.Description,
	}
}

// CreatePixTransferRequest represents a request to transfer to a pix alias.
type CreatePixTransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	Alias         string          `json:"alias"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePixTransferRequest) ToUseCaseInput() usecase.PixTransferInput {
	return usecase.PixTransferInput{
		FromAccountID: r.FromAccountID,
		Alias:         r.Alias,
		Amount:        r.Amount,
		Description:   r.Description,
	}
}

// RegisterPixKeyRequest represents a request to register a pix alias.
type RegisterPixKeyRequest struct {
	Alias string `json:"alias"`
}

// DepositRequest represents a request to credit an account from outside
// the ledger.
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput(accountID string) usecase.DepositInput {
	return usecase.DepositInput{
		AccountID:   accountID,
		Amount:      r.Amount,
		Description: r.Description,
	}
}
