package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	Resolve(ctx context.Context, input usecase.ResolveInput) (*domain.Account, error)
}

// AssetReader looks up an asset by symbol.
type AssetReader interface {
	GetAsset(ctx context.Context, tenant, symbol string) (*domain.Asset, error)
}

// AccountHandler resolves accounts.
type AccountHandler struct {
	accountUC AccountService
	assets    AssetReader
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountUC AccountService, assets AssetReader) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, assets: assets}
}

// Resolve returns a user account, opening it on first reference, or one of
// the asset's system accounts.
func (h *AccountHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req dto.ResolveAccountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tenant, symbol := tenantParam(r), chi.URLParam(r, "symbol")

	account, err := h.accountUC.Resolve(r.Context(), req.ToUseCaseInput(tenant, symbol))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	asset, err := h.assets.GetAsset(r.Context(), tenant, symbol)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account, asset))
}
