package postgres

import (
	"context"
	"time"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/infrastructure/postgres/generated"
	"github.com/iho/vcledger/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db generated.DBTX) *AccountRepository {
	return &AccountRepository{queries: generated.New(db)}
}

// CreateTx creates an account.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	err := queriesFor(tx).CreateAccount(ctx, generated.CreateAccountParams{
		ID:        account.ID,
		Tenant:    account.Tenant,
		AssetID:   account.AssetID,
		Holder:    account.Holder,
		Kind:      string(account.Kind),
		Balance:   amountToNumeric(account.Balance),
		Version:   account.Version,
		CreatedAt: timeToPgTimestamptz(account.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(account.UpdatedAt),
	})

	return mapError(err, nil)
}

// EnsureUserTx inserts the user account when absent and returns the stored
// row. Two racing callers both end up with the same account.
func (r *AccountRepository) EnsureUserTx(ctx context.Context, tx usecase.Tx, account *domain.Account) (*domain.Account, error) {
	q := queriesFor(tx)

	err := q.InsertUserAccountIfAbsent(ctx, generated.InsertUserAccountIfAbsentParams{
		ID:        account.ID,
		Tenant:    account.Tenant,
		AssetID:   account.AssetID,
		Holder:    account.Holder,
		CreatedAt: timeToPgTimestamptz(account.CreatedAt),
	})
	if err != nil {
		return nil, mapError(err, nil)
	}

	row, err := q.GetAccountByKindHolder(ctx, generated.GetAccountByKindHolderParams{
		AssetID: account.AssetID,
		Kind:    string(domain.AccountKindUser),
		Holder:  account.Holder,
	})
	if err != nil {
		return nil, mapError(err, domain.ErrAccountNotFound)
	}

	return rowToAccount(row)
}

// GetSystemTx returns the treasury, burn or genesis account of an asset.
func (r *AccountRepository) GetSystemTx(ctx context.Context, tx usecase.Tx, assetID string, kind domain.AccountKind) (*domain.Account, error) {
	row, err := queriesFor(tx).GetAccountByKindHolder(ctx, generated.GetAccountByKindHolderParams{
		AssetID: assetID,
		Kind:    string(kind),
		Holder:  "",
	})
	if err != nil {
		return nil, mapError(err, domain.ErrAccountNotFound)
	}

	return rowToAccount(row)
}

// GetByIDsForUpdate locks accounts in id order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	rows, err := queriesFor(tx).GetAccountsByIDsForUpdate(ctx, ids)
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows)
}

// ListByAssetForUpdate locks every account of an asset.
func (r *AccountRepository) ListByAssetForUpdate(ctx context.Context, tx usecase.Tx, assetID string) ([]*domain.Account, error) {
	rows, err := queriesFor(tx).ListAccountsByAssetForUpdate(ctx, assetID)
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows)
}

// ListByTenantForUpdate locks every account of a tenant.
func (r *AccountRepository) ListByTenantForUpdate(ctx context.Context, tx usecase.Tx, tenant string) ([]*domain.Account, error) {
	rows, err := queriesFor(tx).ListAccountsByTenantForUpdate(ctx, tenant)
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows)
}

// GetUser returns holder's account in an asset.
func (r *AccountRepository) GetUser(ctx context.Context, assetID, holder string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByKindHolder(ctx, generated.GetAccountByKindHolderParams{
		AssetID: assetID,
		Kind:    string(domain.AccountKindUser),
		Holder:  holder,
	})
	if err != nil {
		return nil, mapError(err, domain.ErrAccountNotFound)
	}

	return rowToAccount(row)
}

// ListByHolder returns holder's user accounts across every asset of the tenant.
func (r *AccountRepository) ListByHolder(ctx context.Context, tenant, holder string) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByHolder(ctx, generated.ListAccountsByHolderParams{
		Tenant: tenant,
		Holder: holder,
	})
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows)
}

// ListByKind returns the tenant's accounts of one kind.
func (r *AccountRepository) ListByKind(ctx context.Context, tenant string, kind domain.AccountKind) ([]*domain.Account, error) {
	rows, err := r.queries.ListAccountsByKind(ctx, generated.ListAccountsByKindParams{
		Tenant: tenant,
		Kind:   string(kind),
	})
	if err != nil {
		return nil, err
	}

	return rowsToAccounts(rows)
}

// UpdateBalance sets the balance and bumps the version.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Tx, id string, balance domain.Amount, updatedAt time.Time) error {
	err := queriesFor(tx).UpdateAccountBalance(ctx, generated.UpdateAccountBalanceParams{
		ID:        id,
		Balance:   amountToNumeric(balance),
		UpdatedAt: timeToPgTimestamptz(updatedAt),
	})

	return mapError(err, nil)
}

func rowsToAccounts(rows []generated.Account) ([]*domain.Account, error) {
	accounts := make([]*domain.Account, 0, len(rows))
	for _, row := range rows {
		acc, err := rowToAccount(row)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func rowToAccount(row generated.Account) (*domain.Account, error) {
	balance, err := numericToAmount(row.Balance)
	if err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:        row.ID,
		Tenant:    row.Tenant,
		AssetID:   row.AssetID,
		Holder:    row.Holder,
		Kind:      domain.AccountKind(row.Kind),
		Balance:   balance,
		Version:   row.Version,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}, nil
}
