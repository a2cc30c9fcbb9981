package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/iho/vcledger/internal/domain"
)

// AssetRepository defines data access for assets.
type AssetRepository interface {
	Create(ctx context.Context, tx Tx, asset *domain.Asset) error
	// GetBySymbolTx loads a live asset inside tx. forUpdate takes an exclusive
	// row lock, otherwise a shared one.
	GetBySymbolTx(ctx context.Context, tx Tx, tenant, symbol string, forUpdate bool) (*domain.Asset, error)
	GetBySymbol(ctx context.Context, tenant, symbol string) (*domain.Asset, error)
	// GetByID and GetByIDTx load an asset by id, including deleted ones.
	GetByID(ctx context.Context, tenant, id string) (*domain.Asset, error)
	GetByIDTx(ctx context.Context, tx Tx, tenant, id string) (*domain.Asset, error)
	List(ctx context.Context, tenant string) ([]*domain.Asset, error)
	// ListAllTx returns every asset of the tenant, deleted ones included.
	ListAllTx(ctx context.Context, tx Tx, tenant string) ([]*domain.Asset, error)
	MarkDeleted(ctx context.Context, tx Tx, id string, deletedAt time.Time) error
}

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	CreateTx(ctx context.Context, tx Tx, account *domain.Account) error
	// EnsureUserTx returns the user account of holder, inserting it when absent.
	EnsureUserTx(ctx context.Context, tx Tx, account *domain.Account) (*domain.Account, error)
	GetSystemTx(ctx context.Context, tx Tx, assetID string, kind domain.AccountKind) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Tx, ids []string) ([]*domain.Account, error)
	ListByAssetForUpdate(ctx context.Context, tx Tx, assetID string) ([]*domain.Account, error)
	ListByTenantForUpdate(ctx context.Context, tx Tx, tenant string) ([]*domain.Account, error)
	GetUser(ctx context.Context, assetID, holder string) (*domain.Account, error)
	ListByHolder(ctx context.Context, tenant, holder string) ([]*domain.Account, error)
	ListByKind(ctx context.Context, tenant string, kind domain.AccountKind) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Tx, id string, balance domain.Amount, updatedAt time.Time) error
}

// TransactionRepository defines data access for ledger transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, txn *domain.Transaction) error
	GetByID(ctx context.Context, tenant, id string) (*domain.Transaction, error)
	GetByIDTx(ctx context.Context, tx Tx, tenant, id string) (*domain.Transaction, error)
	// GetReversalTx returns the correction that reverses id, if any.
	GetReversalTx(ctx context.Context, tx Tx, id string) (*domain.Transaction, error)
}

// EntryRepository defines data access for entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Tx, entry *domain.Entry) error
	ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error)
	ListByTransactionTx(ctx context.Context, tx Tx, transactionID string) ([]*domain.Entry, error)
	ListByTenantTx(ctx context.Context, tx Tx, tenant string) ([]*domain.Entry, error)
	ListByHolder(ctx context.Context, tenant, holder string, limit, offset int) ([]*domain.Entry, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Tx, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Tx represents a store transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// Retrier re-runs an operation on transient store conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Cache holds balances stamped with the account version they were read at.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	// SetIfNewer stores value unless the key already holds a version at
	// least as new.
	SetIfNewer(ctx context.Context, key, value string, version int64, ttl time.Duration) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}

// Metrics records ledger activity.
type Metrics interface {
	TransactionPosted(kind domain.TransactionKind, elapsed time.Duration)
	OperationFailed(operation string, class domain.ErrorClass)
	DriftDetected(count int)
	CacheLookup(hit bool)
}
