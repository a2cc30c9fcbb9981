package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/usecase"
)

// HistoryService defines the behavior needed by HistoryHandler.
type HistoryService interface {
	ListHolderEntries(ctx context.Context, input usecase.ListHolderEntriesInput) ([]*usecase.HolderEntry, error)
}

// HistoryHandler serves a holder's statement.
type HistoryHandler struct {
	entryUC HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(entryUC HistoryService) *HistoryHandler {
	return &HistoryHandler{entryUC: entryUC}
}

// List lists the holder's entries, newest first.
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.entryUC.ListHolderEntries(r.Context(), usecase.ListHolderEntriesInput{
		Tenant: tenantParam(r),
		Holder: chi.URLParam(r, "holder"),
		Limit:  parseIntQuery(r, "limit", 0),
		Offset: parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromUseCase(entries))
}
