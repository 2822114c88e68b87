package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/gopix/internal/adapter/http/dto"
	"github.com/iho/gopix/internal/domain"
	"github.com/iho/gopix/internal/usecase"
)

type accountServiceStub struct {
	createFn  func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn     func(ctx context.Context, id string) (*domain.Account, error)
	balanceFn func(ctx context.Context, id string) (decimal.Decimal, error)
	listFn    func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	return s.balanceFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func TestAccountHandler_Create_Success(t *testing.T) {
	now := time.Now().UTC()
	account := &domain.Account{
		ID:        "acc-1",
		Name:      "alice",
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}

	h := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			if input.Name != "alice" {
				t.Fatalf("unexpected input %+v", input)
			}
			return account, nil
		},
	}, nil)

	body, _ := json.Marshal(dto.CreateAccountRequest{Name: "alice"})
	req := httptest.NewRequest(http.MethodPost, "/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "acc-1" || !resp.Balance.IsZero() {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/ghost", nil)
	req = setChiURLParam(req, "id", "ghost")
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_GetBalance(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		balanceFn: func(ctx context.Context, id string) (decimal.Decimal, error) {
			return decimal.RequireFromString("123.45"), nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/balance", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	h.GetBalance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AccountID != "acc-1" || !resp.Balance.Equal(decimal.RequireFromString("123.45")) {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestAccountHandler_List(t *testing.T) {
	h := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			if input.Limit != 5 || input.Offset != 1 {
				t.Fatalf("unexpected input %+v", input)
			}
			return []*domain.Account{{ID: "acc-1"}}, nil
		},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=5&offset=1", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListAccountsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected total 1, got %d", resp.Total)
	}
}
