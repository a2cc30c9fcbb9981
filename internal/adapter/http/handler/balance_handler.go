package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/usecase"
)

// BalanceService defines the behavior needed by BalanceHandler.
type BalanceService interface {
	GetBalance(ctx context.Context, tenant, symbol, holder string) (*usecase.Holding, error)
	ListHoldings(ctx context.Context, tenant, holder string) ([]*usecase.Holding, error)
	ListTreasury(ctx context.Context, tenant string) ([]*usecase.TreasuryPosition, error)
}

// BalanceHandler serves balance lookups.
type BalanceHandler struct {
	balanceUC BalanceService
}

// NewBalanceHandler creates a new BalanceHandler.
func NewBalanceHandler(balanceUC BalanceService) *BalanceHandler {
	return &BalanceHandler{balanceUC: balanceUC}
}

// Get returns a holder's balance in one asset.
func (h *BalanceHandler) Get(w http.ResponseWriter, r *http.Request) {
	holding, err := h.balanceUC.GetBalance(r.Context(), tenantParam(r), chi.URLParam(r, "symbol"), chi.URLParam(r, "holder"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HoldingFromUseCase(holding))
}

// List returns a holder's balances across every asset.
func (h *BalanceHandler) List(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.balanceUC.ListHoldings(r.Context(), tenantParam(r), chi.URLParam(r, "holder"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HoldingsFromUseCase(holdings))
}

// Treasury returns the treasury and burned totals of every asset.
func (h *BalanceHandler) Treasury(w http.ResponseWriter, r *http.Request) {
	positions, err := h.balanceUC.ListTreasury(r.Context(), tenantParam(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TreasuryFromUseCase(positions))
}
