package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

type balanceServiceStub struct {
	getFn      func(ctx context.Context, tenant, symbol, holder string) (*usecase.Holding, error)
	listFn     func(ctx context.Context, tenant, holder string) ([]*usecase.Holding, error)
	treasuryFn func(ctx context.Context, tenant string) ([]*usecase.TreasuryPosition, error)
}

func (s *balanceServiceStub) GetBalance(ctx context.Context, tenant, symbol, holder string) (*usecase.Holding, error) {
	return s.getFn(ctx, tenant, symbol, holder)
}

func (s *balanceServiceStub) ListHoldings(ctx context.Context, tenant, holder string) ([]*usecase.Holding, error) {
	return s.listFn(ctx, tenant, holder)
}

func (s *balanceServiceStub) ListTreasury(ctx context.Context, tenant string) ([]*usecase.TreasuryPosition, error) {
	return s.treasuryFn(ctx, tenant)
}

func TestBalanceHandler_Get(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		getFn: func(ctx context.Context, tenant, symbol, holder string) (*usecase.Holding, error) {
			if tenant != "guild-1" || symbol != "GOLD" || holder != "alice" {
				t.Fatalf("unexpected lookup %s/%s/%s", tenant, symbol, holder)
			}
			return &usecase.Holding{Asset: goldAsset(), Balance: domain.NewAmount(1999)}, nil
		},
	})

	req := setChiURLParams(httptest.NewRequest(http.MethodGet, "/holders/alice/balances/GOLD", nil),
		"tenant", "guild-1", "holder", "alice", "symbol", "GOLD")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	var resp dto.HoldingResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || resp.Balance != "19.99" {
		t.Fatalf("unexpected response %d: %+v", rec.Code, resp)
	}
}

func TestBalanceHandler_List_InvalidHolder(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		listFn: func(ctx context.Context, tenant, holder string) ([]*usecase.Holding, error) {
			return nil, domain.ErrInvalidHolder
		},
	})

	req := setChiURLParams(httptest.NewRequest(http.MethodGet, "/holders/x/balances", nil), "tenant", "guild-1", "holder", "x")
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestBalanceHandler_Treasury(t *testing.T) {
	handler := NewBalanceHandler(&balanceServiceStub{
		treasuryFn: func(ctx context.Context, tenant string) ([]*usecase.TreasuryPosition, error) {
			return []*usecase.TreasuryPosition{{Asset: goldAsset(), Treasury: domain.NewAmount(90000), Burned: domain.NewAmount(975)}}, nil
		},
	})

	req := setChiURLParams(httptest.NewRequest(http.MethodGet, "/treasury", nil), "tenant", "guild-1")
	rec := httptest.NewRecorder()

	handler.Treasury(rec, req)

	var resp []dto.TreasuryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp) != 1 || resp[0].Treasury != "900.00" || resp[0].Burned != "9.75" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
