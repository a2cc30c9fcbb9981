package postgres

import (
	"context"
	"time"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/infrastructure/postgres/generated"
	"github.com/iho/vcledger/internal/usecase"
)

// AssetRepository implements usecase.AssetRepository.
type AssetRepository struct {
	queries *generated.Queries
}

// NewAssetRepository creates a new AssetRepository. db is usually a *pgxpool.Pool.
func NewAssetRepository(db generated.DBTX) *AssetRepository {
	return &AssetRepository{queries: generated.New(db)}
}

// Create inserts an asset. A symbol already used in the tenant, even by a
// deleted asset, yields domain.ErrDuplicateSymbol.
func (r *AssetRepository) Create(ctx context.Context, tx usecase.Tx, asset *domain.Asset) error {
	err := queriesFor(tx).CreateAsset(ctx, generated.CreateAssetParams{
		ID:        asset.ID,
		Tenant:    asset.Tenant,
		Symbol:    asset.Symbol,
		Name:      asset.Name,
		Decimals:  asset.Decimals,
		CreatedAt: timeToPgTimestamptz(asset.CreatedAt),
	})

	return mapError(err, nil)
}

// GetBySymbolTx loads a live asset under FOR UPDATE or FOR SHARE.
func (r *AssetRepository) GetBySymbolTx(ctx context.Context, tx usecase.Tx, tenant, symbol string, forUpdate bool) (*domain.Asset, error) {
	q := queriesFor(tx)

	var (
		row generated.Asset
		err error
	)
	if forUpdate {
		row, err = q.GetAssetBySymbolForUpdate(ctx, generated.GetAssetBySymbolForUpdateParams{Tenant: tenant, Symbol: symbol})
	} else {
		row, err = q.GetAssetBySymbolForShare(ctx, generated.GetAssetBySymbolForShareParams{Tenant: tenant, Symbol: symbol})
	}
	if err != nil {
		return nil, mapError(err, domain.ErrAssetNotFound)
	}

	return rowToAsset(row), nil
}

// GetBySymbol loads a live asset without locking.
func (r *AssetRepository) GetBySymbol(ctx context.Context, tenant, symbol string) (*domain.Asset, error) {
	row, err := r.queries.GetAssetBySymbol(ctx, generated.GetAssetBySymbolParams{Tenant: tenant, Symbol: symbol})
	if err != nil {
		return nil, mapError(err, domain.ErrAssetNotFound)
	}

	return rowToAsset(row), nil
}

// GetByID loads an asset, deleted or not.
func (r *AssetRepository) GetByID(ctx context.Context, tenant, id string) (*domain.Asset, error) {
	return getAssetByID(ctx, r.queries, tenant, id)
}

// GetByIDTx loads an asset, deleted or not, inside tx.
func (r *AssetRepository) GetByIDTx(ctx context.Context, tx usecase.Tx, tenant, id string) (*domain.Asset, error) {
	return getAssetByID(ctx, queriesFor(tx), tenant, id)
}

func getAssetByID(ctx context.Context, q *generated.Queries, tenant, id string) (*domain.Asset, error) {
	row, err := q.GetAssetByID(ctx, generated.GetAssetByIDParams{Tenant: tenant, ID: id})
	if err != nil {
		return nil, mapError(err, domain.ErrAssetNotFound)
	}

	return rowToAsset(row), nil
}

// List lists the tenant's live assets ordered by symbol.
func (r *AssetRepository) List(ctx context.Context, tenant string) ([]*domain.Asset, error) {
	rows, err := r.queries.ListAssets(ctx, tenant)
	if err != nil {
		return nil, err
	}

	return rowsToAssets(rows), nil
}

// ListAllTx lists every asset of the tenant, deleted ones included.
func (r *AssetRepository) ListAllTx(ctx context.Context, tx usecase.Tx, tenant string) ([]*domain.Asset, error) {
	rows, err := queriesFor(tx).ListAllAssets(ctx, tenant)
	if err != nil {
		return nil, err
	}

	return rowsToAssets(rows), nil
}

// MarkDeleted sets deleted_at. The row and its symbol are kept.
func (r *AssetRepository) MarkDeleted(ctx context.Context, tx usecase.Tx, id string, deletedAt time.Time) error {
	return queriesFor(tx).MarkAssetDeleted(ctx, generated.MarkAssetDeletedParams{
		ID:        id,
		DeletedAt: timeToPgTimestamptz(deletedAt),
	})
}

func rowsToAssets(rows []generated.Asset) []*domain.Asset {
	assets := make([]*domain.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, rowToAsset(row))
	}
	return assets
}

func rowToAsset(row generated.Asset) *domain.Asset {
	return &domain.Asset{
		ID:        row.ID,
		Tenant:    row.Tenant,
		Symbol:    row.Symbol,
		Name:      row.Name,
		Decimals:  row.Decimals,
		CreatedAt: row.CreatedAt.Time,
		DeletedAt: pgTimestamptzToPtr(row.DeletedAt),
	}
}
