package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gopix/internal/adapter/http/dto"
	"github.com/iho/gopix/internal/domain"
	"github.com/iho/gopix/internal/infrastructure/metrics"
	"github.com/iho/gopix/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	TransferToAccount(ctx context.Context, input usecase.TransferInput) (*domain.TransferReceipt, error)
	TransferByAlias(ctx context.Context, input usecase.PixTransferInput) (*domain.TransferReceipt, error)
	Deposit(ctx context.Context, input usecase.DepositInput) (*domain.TransferReceipt, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
	metrics    *metrics.Metrics
}

// NewTransferHandler creates a new TransferHandler. m may be nil.
func NewTransferHandler(transferUC TransferService, m *metrics.Metrics) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, metrics: m}
}

// Create moves funds between two accounts addressed by ID.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := h.transferUC.TransferToAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.countError(err)
		status := mapDomainError(err)
		writeError(w, status, "failed to create transfer", err.Error())

		return
	}

	h.countTransfer(req.Amount.InexactFloat64(), false)

	writeJSON(w, http.StatusCreated, dto.ReceiptFromDomain(receipt))
}

// CreatePix moves funds to the account that owns the given alias.
func (h *TransferHandler) CreatePix(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePixTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := h.transferUC.TransferByAlias(r.Context(), req.ToUseCaseInput())
	if err != nil {
		h.countError(err)
		status := mapDomainError(err)
		writeError(w, status, "failed to create pix transfer", err.Error())

		return
	}

	h.countTransfer(req.Amount.InexactFloat64(), true)

	writeJSON(w, http.StatusCreated, dto.ReceiptFromDomain(receipt))
}

// Deposit credits an account from outside the ledger.
func (h *TransferHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := h.transferUC.Deposit(r.Context(), req.ToUseCaseInput(accountID))
	if err != nil {
		h.countError(err)
		status := mapDomainError(err)
		writeError(w, status, "failed to deposit", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.Deposits.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.ReceiptFromDomain(receipt))
}

func (h *TransferHandler) countTransfer(amount float64, pix bool) {
	if h.metrics == nil {
		return
	}

	h.metrics.TransfersCreated.Inc()
	h.metrics.TransferAmount.Observe(amount)
	if pix {
		h.metrics.PixTransfers.Inc()
	}
}

func (h *TransferHandler) countError(err error) {
	if h.metrics == nil {
		return
	}

	h.metrics.TransferErrors.WithLabelValues(errorReason(err)).Inc()
}
