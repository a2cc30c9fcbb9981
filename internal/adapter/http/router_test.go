package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iho/vcledger/internal/adapter/http/dto"
	"github.com/iho/vcledger/internal/adapter/http/handler"
	apimiddleware "github.com/iho/vcledger/internal/adapter/http/middleware"
	redisrepo "github.com/iho/vcledger/internal/adapter/repository/redis"
	"github.com/iho/vcledger/internal/adapter/repository/sqlite"
	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/infrastructure/auth"
	"github.com/iho/vcledger/internal/infrastructure/idgen"
	sqliteinfra "github.com/iho/vcledger/internal/infrastructure/sqlite"
	"github.com/iho/vcledger/internal/usecase"
)

const testTenant = "guild-1"

// newRouterConfig wires the real use cases over a temporary SQLite file and a
// miniredis balance cache.
func newRouterConfig(t *testing.T, opts ...func(*RouterConfig)) RouterConfig {
	t.Helper()

	db, err := sqliteinfra.Open(context.Background(), filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	assetRepo := sqlite.NewAssetRepository(db)
	transactionRepo := sqlite.NewTransactionRepository(db)
	entryRepo := sqlite.NewEntryRepository(db)

	ledger := usecase.NewLedgerUseCase(
		sqlite.NewTxManager(db),
		assetRepo,
		sqlite.NewAccountRepository(db),
		transactionRepo,
		entryRepo,
		sqlite.NewOutboxRepository(db),
		idgen.NewULIDGenerator(),
	).WithRetrier(sqlite.NewRetrier()).WithCache(redisrepo.NewCache(client), time.Minute)

	assetUC := usecase.NewAssetUseCase(ledger)
	entryUC := usecase.NewEntryUseCase(assetRepo, transactionRepo, entryRepo)

	cfg := RouterConfig{
		AssetHandler:     handler.NewAssetHandler(assetUC),
		TransferHandler:  handler.NewTransferHandler(usecase.NewTransferUseCase(ledger), entryUC),
		BalanceHandler:   handler.NewBalanceHandler(usecase.NewBalanceUseCase(ledger)),
		HistoryHandler:   handler.NewHistoryHandler(entryUC),
		AccountHandler:   handler.NewAccountHandler(usecase.NewAccountUseCase(ledger), assetUC),
		AuditHandler:     handler.NewAuditHandler(usecase.NewReconciliationUseCase(ledger)),
		HealthHandler:    handler.NewHealthHandler(handler.Check{Name: "sqlite", Ping: db.PingContext}),
		Logger:           zerolog.Nop(),
		IdempotencyStore: redisrepo.NewIdempotencyStore(client),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type apiClient struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *apiClient) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	c.t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/v1/tenants/"+testTenant+path, nil)
	} else {
		req = httptest.NewRequest(method, "/api/v1/tenants/"+testTenant+path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	c.router.ServeHTTP(rec, req)
	return rec
}

func (c *apiClient) expect(rec *httptest.ResponseRecorder, status int, out any) {
	c.t.Helper()

	if rec.Code != status {
		c.t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			c.t.Fatalf("decode %s: %v", rec.Body.String(), err)
		}
	}
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	for _, path := range []string{"/health", "/ready"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected %s to return 200, got %d", path, rec.Code)
		}
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_LedgerFlow(t *testing.T) {
	c := &apiClient{t: t, router: NewRouter(newRouterConfig(t))}

	var asset dto.AssetResponse
	c.expect(c.do(http.MethodPost, "/assets", `{"symbol":"gold","name":"Gold","decimals":2,"initial_supply":"1000"}`), http.StatusCreated, &asset)
	if asset.Symbol != "GOLD" {
		t.Fatalf("expected normalized symbol, got %q", asset.Symbol)
	}

	c.expect(c.do(http.MethodPost, "/assets/GOLD/give", `{"to":"alice","amount":"100","memo":"welcome"}`), http.StatusCreated, nil)

	var payment dto.TransactionResponse
	c.expect(c.do(http.MethodPost, "/assets/gold/pay", `{"from":"alice","to":"bob","amount":"30.259"}`), http.StatusCreated, &payment)
	if payment.Kind != "pay" || len(payment.Entries) != 2 || payment.Entries[0].Amount != "30.25" {
		t.Fatalf("unexpected payment: %+v", payment)
	}

	c.expect(c.do(http.MethodPost, "/assets/GOLD/pay", `{"from":"bob","to":"alice","amount":"31"}`), http.StatusUnprocessableEntity, nil)
	c.expect(c.do(http.MethodPost, "/assets/GOLD/pay", `{"from":"bob","to":"bob","amount":"1"}`), http.StatusBadRequest, nil)
	c.expect(c.do(http.MethodPost, "/assets/SILVER/pay", `{"from":"bob","to":"alice","amount":"1"}`), http.StatusNotFound, nil)

	var holding dto.HoldingResponse
	c.expect(c.do(http.MethodGet, "/holders/bob/balances/GOLD", ""), http.StatusOK, &holding)
	if holding.Balance != "30.25" {
		t.Fatalf("expected bob to hold 30.25, got %s", holding.Balance)
	}

	var history []dto.HistoryEntryResponse
	c.expect(c.do(http.MethodGet, "/holders/alice/transactions", ""), http.StatusOK, &history)
	if len(history) != 2 || history[0].Kind != "pay" || history[0].BalanceAfter != "69.75" {
		t.Fatalf("unexpected history: %+v", history)
	}

	var reversal dto.TransactionResponse
	c.expect(c.do(http.MethodPost, "/transactions/"+payment.ID+"/reverse", `{"memo":"oops"}`), http.StatusCreated, &reversal)
	if reversal.Kind != "correction" || reversal.ReversesID == nil || *reversal.ReversesID != payment.ID {
		t.Fatalf("unexpected reversal: %+v", reversal)
	}
	c.expect(c.do(http.MethodPost, "/transactions/"+payment.ID+"/reverse", ""), http.StatusConflict, nil)

	var treasury []dto.TreasuryResponse
	c.expect(c.do(http.MethodGet, "/treasury", ""), http.StatusOK, &treasury)
	if len(treasury) != 1 || treasury[0].Treasury != "900.00" {
		t.Fatalf("unexpected treasury: %+v", treasury)
	}

	var audit map[string]any
	c.expect(c.do(http.MethodPost, "/audit", ""), http.StatusOK, &audit)
	if audit["clean"] != true {
		t.Fatalf("expected clean audit, got %v", audit)
	}

	c.expect(c.do(http.MethodDelete, "/assets/GOLD", ""), http.StatusConflict, nil)
}

func TestNewRouter_IdempotentReplay(t *testing.T) {
	c := &apiClient{t: t, router: NewRouter(newRouterConfig(t))}

	c.expect(c.do(http.MethodPost, "/assets", `{"symbol":"GOLD","name":"Gold","decimals":0,"initial_supply":"50"}`), http.StatusCreated, nil)

	first := c.do(http.MethodPost, "/assets/GOLD/give", `{"to":"alice","amount":"5"}`, apimiddleware.IdempotencyKeyHeader, "give-1")
	c.expect(first, http.StatusCreated, nil)

	second := c.do(http.MethodPost, "/assets/GOLD/give", `{"to":"alice","amount":"5"}`, apimiddleware.IdempotencyKeyHeader, "give-1")
	if second.Header().Get(apimiddleware.IdempotencyReplayHeader) != "true" {
		t.Fatalf("expected replayed response, got %d: %s", second.Code, second.Body.String())
	}
	if second.Body.String() != first.Body.String() {
		t.Fatalf("expected identical body on replay")
	}

	var holding dto.HoldingResponse
	c.expect(c.do(http.MethodGet, "/holders/alice/balances/GOLD", ""), http.StatusOK, &holding)
	if holding.Balance != "5" {
		t.Fatalf("expected a single give, balance %s", holding.Balance)
	}
}

func TestNewRouter_Authentication(t *testing.T) {
	jwtManager := auth.NewJWTManager("router-secret", time.Hour)
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.JWTManager = jwtManager
	}))

	token := func(tenant, user string, role domain.Role) string {
		s, err := jwtManager.Generate(&domain.Caller{Tenant: tenant, UserID: user, Role: role})
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		return s
	}

	anonymous := &apiClient{t: t, router: router}
	anonymous.expect(anonymous.do(http.MethodGet, "/assets", ""), http.StatusUnauthorized, nil)

	stranger := &apiClient{t: t, router: router, token: token("guild-2", "eve", domain.RoleAdmin)}
	stranger.expect(stranger.do(http.MethodGet, "/assets", ""), http.StatusForbidden, nil)

	admin := &apiClient{t: t, router: router, token: token(testTenant, "owner", domain.RoleAdmin)}
	member := &apiClient{t: t, router: router, token: token(testTenant, "alice", domain.RoleMember)}

	member.expect(member.do(http.MethodPost, "/assets", `{"symbol":"GOLD","name":"Gold","initial_supply":"10"}`), http.StatusForbidden, nil)
	admin.expect(admin.do(http.MethodPost, "/assets", `{"symbol":"GOLD","name":"Gold","initial_supply":"10"}`), http.StatusCreated, nil)
	admin.expect(admin.do(http.MethodPost, "/assets/GOLD/give", `{"to":"alice","amount":"4"}`), http.StatusCreated, nil)
	member.expect(member.do(http.MethodPost, "/assets/GOLD/give", `{"to":"alice","amount":"4"}`), http.StatusForbidden, nil)

	// The token's user pays, whatever the body claims.
	member.expect(member.do(http.MethodPost, "/assets/GOLD/pay", `{"from":"owner","to":"bob","amount":"3"}`), http.StatusCreated, nil)

	var holding dto.HoldingResponse
	member.expect(member.do(http.MethodGet, "/holders/alice/balances/GOLD", ""), http.StatusOK, &holding)
	if holding.Balance != "1" {
		t.Fatalf("expected alice to have paid, balance %s", holding.Balance)
	}
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+strings.TrimSuffix(route, "/")] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	prefix := "/api/v1/tenants/{tenant}"
	expected := []string{
		"GET /health",
		"GET /ready",
		"POST " + prefix + "/assets",
		"GET " + prefix + "/assets",
		"GET " + prefix + "/assets/{symbol}",
		"DELETE " + prefix + "/assets/{symbol}",
		"POST " + prefix + "/assets/{symbol}/give",
		"POST " + prefix + "/assets/{symbol}/pay",
		"POST " + prefix + "/assets/{symbol}/burn",
		"GET " + prefix + "/treasury",
		"GET " + prefix + "/holders/{holder}/balances",
		"GET " + prefix + "/holders/{holder}/balances/{symbol}",
		"GET " + prefix + "/holders/{holder}/transactions",
		"GET " + prefix + "/transactions/{id}",
		"POST " + prefix + "/transactions/{id}/reverse",
		"POST " + prefix + "/audit",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}
