package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/vcledger/internal/adapter/http"
	"github.com/iho/vcledger/internal/adapter/http/handler"
	"github.com/iho/vcledger/internal/adapter/http/middleware"
	redisRepo "github.com/iho/vcledger/internal/adapter/repository/redis"
	"github.com/iho/vcledger/internal/infrastructure/auth"
	"github.com/iho/vcledger/internal/infrastructure/config"
	"github.com/iho/vcledger/internal/infrastructure/eventpublisher"
	"github.com/iho/vcledger/internal/infrastructure/idgen"
	"github.com/iho/vcledger/internal/infrastructure/metrics"
	"github.com/iho/vcledger/internal/usecase"
)

// app is the wired server: the HTTP handler and the outbox worker.
type app struct {
	router      http.Handler
	rateLimiter *middleware.RateLimiter
	outbox      *eventpublisher.EventPublisher
}

// newApp wires use cases, handlers and the outbox worker. redisClient may be
// nil, in which case caching and idempotency are off and events go to the log.
func newApp(cfg *config.Config, store *ledgerStore, redisClient *goredis.Client, logger zerolog.Logger, reg *prometheus.Registry) *app {
	m := metrics.NewWithRegisterer(reg)

	ledger := usecase.NewLedgerUseCase(
		store.txManager,
		store.assets,
		store.accounts,
		store.transactions,
		store.entries,
		store.outbox,
		idgen.NewULIDGenerator(),
	).WithRetrier(store.retrier).WithMetrics(m).WithTimeout(cfg.DatabaseTimeout)

	checks := []handler.Check{store.check}

	var (
		idempotencyStore usecase.IdempotencyStore
		publisher        eventpublisher.Publisher = eventpublisher.NewLogPublisher(&logger)
	)
	if redisClient != nil {
		ledger = ledger.WithCache(redisRepo.NewCache(redisClient), cfg.BalanceCacheTTL)
		idempotencyStore = redisRepo.NewIdempotencyStore(redisClient)
		publisher = redisRepo.NewPublisher(redisClient, cfg.OutboxChannel)
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}})
	}

	assetUC := usecase.NewAssetUseCase(ledger)
	entryUC := usecase.NewEntryUseCase(store.assets, store.transactions, store.entries)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst).OnLimit(m.RateLimited)

	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AssetHandler:     handler.NewAssetHandler(assetUC),
		TransferHandler:  handler.NewTransferHandler(usecase.NewTransferUseCase(ledger), entryUC),
		BalanceHandler:   handler.NewBalanceHandler(usecase.NewBalanceUseCase(ledger)),
		HistoryHandler:   handler.NewHistoryHandler(entryUC),
		AccountHandler:   handler.NewAccountHandler(usecase.NewAccountUseCase(ledger), assetUC),
		AuditHandler:     handler.NewAuditHandler(usecase.NewReconciliationUseCase(ledger)),
		HealthHandler:    handler.NewHealthHandler(checks...),
		MetricsHandler:   promhttp.HandlerFor(prometheus.Gatherers{reg, prometheus.DefaultGatherer}, promhttp.HandlerOpts{}),
		Logger:           logger,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      rateLimiter,
	})

	var outbox *eventpublisher.EventPublisher
	if cfg.OutboxEnabled {
		outbox = eventpublisher.NewEventPublisher(eventpublisher.Config{
			OutboxRepo: store.outbox,
			Publisher:  publisher,
			Recorder:   m,
			Logger:     &logger,
			BatchSize:  cfg.OutboxBatchSize,
			Interval:   cfg.OutboxInterval,
		})
	}

	return &app{router: router, rateLimiter: rateLimiter, outbox: outbox}
}
