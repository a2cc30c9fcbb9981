package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

type accountServiceStub struct {
	resolveFn func(ctx context.Context, input usecase.ResolveInput) (*domain.Account, error)
}

func (s *accountServiceStub) Resolve(ctx context.Context, input usecase.ResolveInput) (*domain.Account, error) {
	return s.resolveFn(ctx, input)
}

func TestAccountHandler_Resolve(t *testing.T) {
	var captured usecase.ResolveInput
	handler := NewAccountHandler(&accountServiceStub{
		resolveFn: func(ctx context.Context, input usecase.ResolveInput) (*domain.Account, error) {
			captured = input
			return &domain.Account{ID: "acc-1", Holder: "alice", Kind: domain.AccountKindUser, Balance: domain.NewAmount(42)}, nil
		},
	}, &assetServiceStub{
		getFn: func(ctx context.Context, tenant, symbol string) (*domain.Asset, error) { return goldAsset(), nil },
	})

	req := httptest.NewRequest(http.MethodPost, "/assets/GOLD/accounts", bytes.NewBufferString(`{"holder":"alice"}`))
	req = setChiURLParams(req, "tenant", "guild-1", "symbol", "GOLD")
	rec := httptest.NewRecorder()

	handler.Resolve(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if captured.Holder != "alice" || captured.Kind != "" || captured.Symbol != "GOLD" {
		t.Fatalf("unexpected input: %+v", captured)
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Balance != "0.42" || resp.Kind != "user" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_Resolve_UnknownKind(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		resolveFn: func(ctx context.Context, input usecase.ResolveInput) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, &assetServiceStub{})

	req := httptest.NewRequest(http.MethodPost, "/assets/GOLD/accounts", bytes.NewBufferString(`{"kind":"vault"}`))
	rec := httptest.NewRecorder()

	handler.Resolve(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
