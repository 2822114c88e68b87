package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gopix/internal/adapter/http/dto"
	"github.com/iho/gopix/internal/domain"
	"github.com/iho/gopix/internal/usecase"
)

// StatementService defines the behavior needed by StatementHandler.
type StatementService interface {
	ListByAccount(ctx context.Context, input usecase.ListByAccountInput) ([]*domain.StatementEntry, error)
	GetByTransfer(ctx context.Context, transferID string) ([]*domain.StatementEntry, error)
}

// StatementHandler handles statement HTTP requests.
type StatementHandler struct {
	statementUC StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(statementUC StatementService) *StatementHandler {
	return &StatementHandler{statementUC: statementUC}
}

// ListByAccount lists an account's statement entries, newest first.
func (h *StatementHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.statementUC.ListByAccount(r.Context(), usecase.ListByAccountInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list statement", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementEntriesFromDomain(entries))
}

// GetByTransfer returns both legs of a transfer.
func (h *StatementHandler) GetByTransfer(w http.ResponseWriter, r *http.Request) {
	transferID := chi.URLParam(r, "id")
	if transferID == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	entries, err := h.statementUC.GetByTransfer(r.Context(), transferID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get transfer entries", err.Error())
		return
	}

	if len(entries) == 0 {
		writeError(w, http.StatusNotFound, "transfer not found", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementEntriesFromDomain(entries))
}
