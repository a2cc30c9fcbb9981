package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

const assetColumns = `id, tenant, symbol, name, decimals, created_at, deleted_at`

// AssetRepository implements usecase.AssetRepository.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create inserts an asset.
func (r *AssetRepository) Create(ctx context.Context, tx usecase.Tx, asset *domain.Asset) error {
	_, err := sqlTx(tx).ExecContext(ctx,
		`INSERT INTO assets (id, tenant, symbol, name, decimals, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		asset.ID, asset.Tenant, asset.Symbol, asset.Name, asset.Decimals, toMillis(asset.CreatedAt),
	)
	return mapError(err, nil)
}

// GetBySymbolTx loads a live asset. The IMMEDIATE transaction already holds
// the database write lock, so forUpdate needs no extra locking.
func (r *AssetRepository) GetBySymbolTx(ctx context.Context, tx usecase.Tx, tenant, symbol string, _ bool) (*domain.Asset, error) {
	return getAssetBySymbol(ctx, sqlTx(tx), tenant, symbol)
}

// GetBySymbol loads a live asset.
func (r *AssetRepository) GetBySymbol(ctx context.Context, tenant, symbol string) (*domain.Asset, error) {
	return getAssetBySymbol(ctx, r.db, tenant, symbol)
}

func getAssetBySymbol(ctx context.Context, db dbtx, tenant, symbol string) (*domain.Asset, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE tenant = ? AND symbol = ? AND deleted_at IS NULL`,
		tenant, symbol,
	)
	asset, err := scanAsset(row)
	if err != nil {
		return nil, mapError(err, domain.ErrAssetNotFound)
	}
	return asset, nil
}

// GetByID loads an asset, deleted or not.
func (r *AssetRepository) GetByID(ctx context.Context, tenant, id string) (*domain.Asset, error) {
	return getAssetByID(ctx, r.db, tenant, id)
}

// GetByIDTx loads an asset, deleted or not, inside tx.
func (r *AssetRepository) GetByIDTx(ctx context.Context, tx usecase.Tx, tenant, id string) (*domain.Asset, error) {
	return getAssetByID(ctx, sqlTx(tx), tenant, id)
}

func getAssetByID(ctx context.Context, db dbtx, tenant, id string) (*domain.Asset, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+assetColumns+` FROM assets WHERE tenant = ? AND id = ?`,
		tenant, id,
	)
	asset, err := scanAsset(row)
	if err != nil {
		return nil, mapError(err, domain.ErrAssetNotFound)
	}
	return asset, nil
}

// List lists the tenant's live assets ordered by symbol.
func (r *AssetRepository) List(ctx context.Context, tenant string) ([]*domain.Asset, error) {
	return listAssets(ctx, r.db,
		`SELECT `+assetColumns+` FROM assets WHERE tenant = ? AND deleted_at IS NULL ORDER BY symbol`, tenant)
}

// ListAllTx lists every asset of the tenant, deleted ones included.
func (r *AssetRepository) ListAllTx(ctx context.Context, tx usecase.Tx, tenant string) ([]*domain.Asset, error) {
	return listAssets(ctx, sqlTx(tx),
		`SELECT `+assetColumns+` FROM assets WHERE tenant = ? ORDER BY symbol`, tenant)
}

func listAssets(ctx context.Context, db dbtx, query string, args ...any) ([]*domain.Asset, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := []*domain.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

// MarkDeleted sets deleted_at. The row and its symbol are kept.
func (r *AssetRepository) MarkDeleted(ctx context.Context, tx usecase.Tx, id string, deletedAt time.Time) error {
	_, err := sqlTx(tx).ExecContext(ctx,
		`UPDATE assets SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`,
		toMillis(deletedAt), id,
	)
	return err
}

func scanAsset(s scanner) (*domain.Asset, error) {
	var (
		asset     domain.Asset
		createdAt int64
		deletedAt sql.NullInt64
	)
	if err := s.Scan(&asset.ID, &asset.Tenant, &asset.Symbol, &asset.Name, &asset.Decimals, &createdAt, &deletedAt); err != nil {
		return nil, err
	}
	asset.CreatedAt = fromMillis(createdAt)
	asset.DeletedAt = nullMillis(deletedAt)
	return &asset, nil
}
