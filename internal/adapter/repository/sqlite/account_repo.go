package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

const accountColumns = `id, tenant, asset_id, holder, kind, balance, version, created_at, updated_at`

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateTx creates an account.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	_, err := sqlTx(tx).ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		account.ID, account.Tenant, account.AssetID, account.Holder, string(account.Kind),
		account.Balance.String(), account.Version, toMillis(account.CreatedAt), toMillis(account.UpdatedAt),
	)
	return mapError(err, nil)
}

// EnsureUserTx inserts the user account when absent and returns the stored row.
func (r *AccountRepository) EnsureUserTx(ctx context.Context, tx usecase.Tx, account *domain.Account) (*domain.Account, error) {
	db := sqlTx(tx)

	_, err := db.ExecContext(ctx,
		`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, 'user', '0', 0, ?, ?)
		 ON CONFLICT (asset_id, kind, holder) DO NOTHING`,
		account.ID, account.Tenant, account.AssetID, account.Holder,
		toMillis(account.CreatedAt), toMillis(account.CreatedAt),
	)
	if err != nil {
		return nil, mapError(err, nil)
	}

	return getAccountByKindHolder(ctx, db, account.AssetID, domain.AccountKindUser, account.Holder)
}

// GetSystemTx returns the treasury, burn or genesis account of an asset.
func (r *AccountRepository) GetSystemTx(ctx context.Context, tx usecase.Tx, assetID string, kind domain.AccountKind) (*domain.Account, error) {
	return getAccountByKindHolder(ctx, sqlTx(tx), assetID, kind, "")
}

// GetUser returns holder's account in an asset.
func (r *AccountRepository) GetUser(ctx context.Context, assetID, holder string) (*domain.Account, error) {
	return getAccountByKindHolder(ctx, r.db, assetID, domain.AccountKindUser, holder)
}

func getAccountByKindHolder(ctx context.Context, db dbtx, assetID string, kind domain.AccountKind, holder string) (*domain.Account, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE asset_id = ? AND kind = ? AND holder = ?`,
		assetID, string(kind), holder,
	)
	acc, err := scanAccount(row)
	if err != nil {
		return nil, mapError(err, domain.ErrAccountNotFound)
	}
	return acc, nil
}

// GetByIDsForUpdate loads accounts in id order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	if len(ids) == 0 {
		return []*domain.Account{}, nil
	}
	return listAccounts(ctx, sqlTx(tx),
		`SELECT `+accountColumns+` FROM accounts WHERE id IN (`+placeholders(len(ids))+`) ORDER BY id`,
		stringArgs(ids)...)
}

// ListByAssetForUpdate loads every account of an asset.
func (r *AccountRepository) ListByAssetForUpdate(ctx context.Context, tx usecase.Tx, assetID string) ([]*domain.Account, error) {
	return listAccounts(ctx, sqlTx(tx),
		`SELECT `+accountColumns+` FROM accounts WHERE asset_id = ? ORDER BY id`, assetID)
}

// ListByTenantForUpdate loads every account of a tenant.
func (r *AccountRepository) ListByTenantForUpdate(ctx context.Context, tx usecase.Tx, tenant string) ([]*domain.Account, error) {
	return listAccounts(ctx, sqlTx(tx),
		`SELECT `+accountColumns+` FROM accounts WHERE tenant = ? ORDER BY id`, tenant)
}

// ListByHolder returns holder's user accounts across every asset of the tenant.
func (r *AccountRepository) ListByHolder(ctx context.Context, tenant, holder string) ([]*domain.Account, error) {
	return listAccounts(ctx, r.db,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant = ? AND holder = ? AND kind = 'user' ORDER BY id`,
		tenant, holder)
}

// ListByKind returns the tenant's accounts of one kind.
func (r *AccountRepository) ListByKind(ctx context.Context, tenant string, kind domain.AccountKind) ([]*domain.Account, error) {
	return listAccounts(ctx, r.db,
		`SELECT `+accountColumns+` FROM accounts WHERE tenant = ? AND kind = ? ORDER BY id`,
		tenant, string(kind))
}

// UpdateBalance sets the balance and bumps the version.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance domain.Amount, updatedAt time.Time) error {
	_, err := sqlTx(tx).ExecContext(ctx,
		`UPDATE accounts SET balance = ?, version = version + 1, updated_at = ? WHERE id = ?`,
		balance.String(), toMillis(updatedAt), id,
	)
	return mapError(err, nil)
}

func listAccounts(ctx context.Context, db dbtx, query string, args ...any) ([]*domain.Account, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := []*domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func scanAccount(s scanner) (*domain.Account, error) {
	var (
		acc                  domain.Account
		kind, balance        string
		createdAt, updatedAt int64
	)
	if err := s.Scan(&acc.ID, &acc.Tenant, &acc.AssetID, &acc.Holder, &kind, &balance, &acc.Version, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	amount, err := domain.ParseUnits(balance)
	if err != nil {
		return nil, err
	}

	acc.Kind = domain.AccountKind(kind)
	acc.Balance = amount
	acc.CreatedAt = fromMillis(createdAt)
	acc.UpdatedAt = fromMillis(updatedAt)
	return &acc, nil
}
