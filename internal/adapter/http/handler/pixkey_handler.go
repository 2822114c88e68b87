package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/gopix/internal/adapter/http/dto"
	"github.com/iho/gopix/internal/infrastructure/metrics"
)

// PixKeyService defines the behavior needed by PixKeyHandler.
type PixKeyService interface {
	Register(ctx context.Context, accountID, alias string) error
	Revoke(ctx context.Context, accountID, alias string) error
	List(ctx context.Context, accountID string) ([]string, error)
}

// PixKeyHandler handles pix key HTTP requests.
type PixKeyHandler struct {
	pixKeyUC PixKeyService
	metrics  *metrics.Metrics
}

// NewPixKeyHandler creates a new PixKeyHandler. m may be nil.
func NewPixKeyHandler(pixKeyUC PixKeyService, m *metrics.Metrics) *PixKeyHandler {
	return &PixKeyHandler{pixKeyUC: pixKeyUC, metrics: m}
}

// Register binds an alias to the account in the path.
func (h *PixKeyHandler) Register(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.RegisterPixKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.pixKeyUC.Register(r.Context(), accountID, req.Alias); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to register pix key", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.PixKeysRegistered.Inc()
	}

	w.WriteHeader(http.StatusCreated)
}

// Revoke removes an alias owned by the account in the path.
func (h *PixKeyHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	alias := chi.URLParam(r, "alias")
	if accountID == "" || alias == "" {
		writeError(w, http.StatusBadRequest, "missing account ID or alias", "")
		return
	}

	if err := h.pixKeyUC.Revoke(r.Context(), accountID, alias); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to revoke pix key", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.PixKeysRevoked.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}

// List returns the aliases held by the account in the path.
func (h *PixKeyHandler) List(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	aliases, err := h.pixKeyUC.List(r.Context(), accountID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to list pix keys", err.Error())

		return
	}

	if aliases == nil {
		aliases = []string{}
	}

	writeJSON(w, http.StatusOK, dto.PixKeysResponse{
		AccountID: accountID,
		Aliases:   aliases,
	})
}
