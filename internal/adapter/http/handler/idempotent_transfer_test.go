package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/adapter/http/middleware"
	redisRepo "github.com/iho/vcledger/internal/adapter/repository/redis"
	"github.com/iho/vcledger/internal/usecase"
)

func TestTransferHandler_Pay_IdempotentWhenReadsFail(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	var commits int
	handler := NewTransferHandler(&transferServiceStub{
		payFn: func(ctx context.Context, input usecase.PayInput) (*usecase.PostedTransaction, error) {
			commits++
			return postedGold("txn-1"), nil
		},
	}, &readerStub{err: errors.New("connection reset")})

	mw := middleware.NewIdempotencyMiddleware(redisRepo.NewIdempotencyStore(client), time.Hour)
	wrapped := mw.Wrap(http.HandlerFunc(handler.Pay))

	send := func() *httptest.ResponseRecorder {
		req := postJSON("/api/v1/tenants/guild-1/assets/GOLD/pay", dto.PayRequest{From: "alice", To: "bob", Amount: decimal.RequireFromString("2.5")})
		req.Header.Set(middleware.IdempotencyKeyHeader, "pay-once")
		req = setChiURLParams(req, "tenant", "guild-1", "symbol", "GOLD")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		return rec
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("expected 201 for a committed payment, got %d: %s", first.Code, first.Body.String())
	}

	second := send()
	if second.Header().Get(middleware.IdempotencyReplayHeader) != "true" {
		t.Fatalf("expected the retry to be replayed, got %d: %s", second.Code, second.Body.String())
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("replayed body differs:\n%s\n%s", first.Body.String(), second.Body.String())
	}
	if commits != 1 {
		t.Fatalf("expected one committed payment, got %d", commits)
	}
}
