package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/iho/vcledger/internal/adapter/http/handler"
	"github.com/iho/vcledger/internal/adapter/http/middleware"
	"github.com/iho/vcledger/internal/infrastructure/auth"
	"github.com/iho/vcledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AssetHandler    *handler.AssetHandler
	TransferHandler *handler.TransferHandler
	BalanceHandler  *handler.BalanceHandler
	HistoryHandler  *handler.HistoryHandler
	AccountHandler  *handler.AccountHandler
	AuditHandler    *handler.AuditHandler
	HealthHandler   *handler.HealthHandler

	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler

	Logger zerolog.Logger

	// JWTManager enables bearer authentication when set.
	JWTManager *auth.JWTManager

	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	RateLimiter      *middleware.RateLimiter
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Recovery)
	r.Use(middleware.Metrics)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	admin := func(next http.Handler) http.Handler { return next }
	if cfg.JWTManager != nil {
		admin = middleware.RequireAdmin
	}

	r.Route("/api/v1/tenants/{tenant}", func(r chi.Router) {
		if cfg.JWTManager != nil {
			r.Use(middleware.AuthMiddleware(cfg.JWTManager))
		}

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
		}

		// Assets
		r.Route("/assets", func(r chi.Router) {
			r.Get("/", cfg.AssetHandler.List)
			r.With(admin).Post("/", cfg.AssetHandler.Create)

			r.Route("/{symbol}", func(r chi.Router) {
				r.Get("/", cfg.AssetHandler.Get)
				r.With(admin).Delete("/", cfg.AssetHandler.Delete)
				r.With(admin).Post("/give", cfg.TransferHandler.Give)
				r.With(admin).Post("/burn", cfg.TransferHandler.Burn)
				r.Post("/pay", cfg.TransferHandler.Pay)
				r.Post("/accounts", cfg.AccountHandler.Resolve)
			})
		})

		r.With(admin).Get("/treasury", cfg.BalanceHandler.Treasury)

		// Holders
		r.Route("/holders/{holder}", func(r chi.Router) {
			r.Get("/balances", cfg.BalanceHandler.List)
			r.Get("/balances/{symbol}", cfg.BalanceHandler.Get)
			r.Get("/transactions", cfg.HistoryHandler.List)
		})

		// Transactions
		r.Route("/transactions/{id}", func(r chi.Router) {
			r.Get("/", cfg.TransferHandler.Get)
			r.With(admin).Post("/reverse", cfg.TransferHandler.Reverse)
		})

		r.With(admin).Post("/audit", cfg.AuditHandler.Run)
	})

	return r
}
