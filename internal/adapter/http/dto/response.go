package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gopix/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Balance:   a.Balance,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// BalanceResponse represents an account balance in API responses.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// ReceiptResponse represents a completed transfer or deposit. Balance
// is the payer's balance after the operation.
type ReceiptResponse struct {
	TransferID string          `json:"transfer_id"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"created_at"`
}

// ReceiptFromDomain converts a domain receipt to a response.
func ReceiptFromDomain(r *domain.TransferReceipt) *ReceiptResponse {
	return &ReceiptResponse{
		TransferID: r.TransferID,
		Balance:    r.FromBalance,
		CreatedAt:  r.CreatedAt,
	}
}

// StatementEntryResponse represents a journal entry in API responses.
type StatementEntryResponse struct {
	ID          string          `json:"id"`
	AccountID   string          `json:"account_id"`
	TransferID  string          `json:"transfer_id"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Direction   string          `json:"direction"`
	CreatedAt   time.Time       `json:"created_at"`
}

// StatementEntryFromDomain converts a domain entry to a response.
func StatementEntryFromDomain(e *domain.StatementEntry) *StatementEntryResponse {
	return &StatementEntryResponse{
		ID:          e.ID,
		AccountID:   e.AccountID,
		TransferID:  e.TransferID,
		Description: e.Description,
		Amount:      e.Amount,
		Direction:   string(e.Direction),
		CreatedAt:   e.CreatedAt,
	}
}

// StatementEntriesFromDomain converts domain entries to responses.
func StatementEntriesFromDomain(entries []*domain.StatementEntry) []*StatementEntryResponse {
	result := make([]*StatementEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = StatementEntryFromDomain(e)
	}
	return result
}

// PixKeysResponse represents the aliases held by one account.
type PixKeysResponse struct {
	AccountID string   `json:"account_id"`
	Aliases   []string `json:"aliases"`
}

// ConsistencyResponse represents the result of a ledger consistency check.
type ConsistencyResponse struct {
	Status     string `json:"status"`
	Consistent bool   `json:"consistent"`
	Message    string `json:"message,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
