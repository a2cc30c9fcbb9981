package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

// AssetService defines the behavior needed by AssetHandler.
type AssetService interface {
	CreateAsset(ctx context.Context, input usecase.CreateAssetInput) (*domain.Asset, error)
	DeleteAsset(ctx context.Context, tenant, symbol string) error
	GetAsset(ctx context.Context, tenant, symbol string) (*domain.Asset, error)
	ListAssets(ctx context.Context, tenant string) ([]*domain.Asset, error)
}

// AssetHandler handles asset-related HTTP requests.
type AssetHandler struct {
	assetUC AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetUC AssetService) *AssetHandler {
	return &AssetHandler{assetUC: assetUC}
}

// Create creates an asset and issues its initial supply to the treasury.
func (h *AssetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAssetRequest
	if !decodeBody(w, r, &req) {
		return
	}

	asset, err := h.assetUC.CreateAsset(r.Context(), req.ToUseCaseInput(tenantParam(r)))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AssetFromDomain(asset))
}

// Get retrieves an asset by symbol.
func (h *AssetHandler) Get(w http.ResponseWriter, r *http.Request) {
	asset, err := h.assetUC.GetAsset(r.Context(), tenantParam(r), chi.URLParam(r, "symbol"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetFromDomain(asset))
}

// List lists the tenant's live assets.
func (h *AssetHandler) List(w http.ResponseWriter, r *http.Request) {
	assets, err := h.assetUC.ListAssets(r.Context(), tenantParam(r))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.AssetsFromDomain(assets))
}

// Delete soft-deletes an asset whose user balances are all zero.
func (h *AssetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.assetUC.DeleteAsset(r.Context(), tenantParam(r), chi.URLParam(r, "symbol")); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
