package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/iho/vcledger/internal/adapter/http/handler"
	postgresRepo "github.com/iho/vcledger/internal/adapter/repository/postgres"
	sqliteRepo "github.com/iho/vcledger/internal/adapter/repository/sqlite"
	"github.com/iho/vcledger/internal/infrastructure/config"
	"github.com/iho/vcledger/internal/infrastructure/postgres"
	"github.com/iho/vcledger/internal/infrastructure/sqlite"
	"github.com/iho/vcledger/internal/usecase"
)

// ledgerStore bundles the repositories of one storage backend.
type ledgerStore struct {
	txManager    usecase.TxManager
	assets       usecase.AssetRepository
	accounts     usecase.AccountRepository
	transactions usecase.TransactionRepository
	entries      usecase.EntryRepository
	outbox       usecase.OutboxRepository
	retrier      usecase.Retrier
	check        handler.Check
	close        func()
}

// openStore connects to the configured backend and applies its migrations.
func openStore(ctx context.Context, cfg *config.Config) (*ledgerStore, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("opened sqlite ledger")

		return &ledgerStore{
			txManager:    sqliteRepo.NewTxManager(db),
			assets:       sqliteRepo.NewAssetRepository(db),
			accounts:     sqliteRepo.NewAccountRepository(db),
			transactions: sqliteRepo.NewTransactionRepository(db),
			entries:      sqliteRepo.NewEntryRepository(db),
			outbox:       sqliteRepo.NewOutboxRepository(db),
			retrier:      sqliteRepo.NewRetrier(),
			check:        handler.Check{Name: "sqlite", Ping: db.PingContext},
			close:        func() { _ = db.Close() },
		}, nil

	case config.DriverPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL); err != nil {
			return nil, err
		}

		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to postgres")

		return &ledgerStore{
			txManager:    postgresRepo.NewTxManager(pool),
			assets:       postgresRepo.NewAssetRepository(pool),
			accounts:     postgresRepo.NewAccountRepository(pool),
			transactions: postgresRepo.NewTransactionRepository(pool),
			entries:      postgresRepo.NewEntryRepository(pool),
			outbox:       postgresRepo.NewOutboxRepository(pool),
			retrier:      postgresRepo.NewRetrier(),
			check:        handler.Check{Name: "postgres", Ping: pool.Ping},
			close:        pool.Close,
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}
