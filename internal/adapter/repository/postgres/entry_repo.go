package postgres

import (
	"context"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/infrastructure/postgres/generated"
	"github.com/iho/vcledger/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db generated.DBTX) *EntryRepository {
	return &EntryRepository{queries: generated.New(db)}
}

// Create creates a new entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Tx, entry *domain.Entry) error {
	err := queriesFor(tx).CreateEntry(ctx, generated.CreateEntryParams{
		ID:                     entry.ID,
		Tenant:                 entry.Tenant,
		TransactionID:          entry.TransactionID,
		AccountID:              entry.AccountID,
		Direction:              string(entry.Direction),
		Amount:                 amountToNumeric(entry.Amount),
		AccountPreviousBalance: amountToNumeric(entry.AccountPreviousBalance),
		AccountCurrentBalance:  amountToNumeric(entry.AccountCurrentBalance),
		AccountVersion:         entry.AccountVersion,
		CreatedAt:              timeToPgTimestamptz(entry.CreatedAt),
	})

	return mapError(err, nil)
}

// ListByTransaction retrieves the entries of one transaction in posting order.
func (r *EntryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows)
}

// ListByTransactionTx is ListByTransaction inside tx.
func (r *EntryRepository) ListByTransactionTx(ctx context.Context, tx usecase.Tx, transactionID string) ([]*domain.Entry, error) {
	rows, err := queriesFor(tx).ListEntriesByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows)
}

// ListByTenantTx retrieves every entry of the tenant.
func (r *EntryRepository) ListByTenantTx(ctx context.Context, tx usecase.Tx, tenant string) ([]*domain.Entry, error) {
	rows, err := queriesFor(tx).ListEntriesByTenant(ctx, tenant)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows)
}

// ListByHolder retrieves entries on holder's user accounts, newest first.
func (r *EntryRepository) ListByHolder(ctx context.Context, tenant, holder string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntriesByHolder(ctx, generated.ListEntriesByHolderParams{
		Tenant: tenant,
		Holder: holder,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows)
}

func rowsToEntries(rows []generated.Entry) ([]*domain.Entry, error) {
	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		e, err := rowToEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func rowToEntry(row generated.Entry) (*domain.Entry, error) {
	amount, err := numericToAmount(row.Amount)
	if err != nil {
		return nil, err
	}
	previous, err := numericToAmount(row.AccountPreviousBalance)
	if err != nil {
		return nil, err
	}
	current, err := numericToAmount(row.AccountCurrentBalance)
	if err != nil {
		return nil, err
	}

	return &domain.Entry{
		ID:                     row.ID,
		Tenant:                 row.Tenant,
		TransactionID:          row.TransactionID,
		AccountID:              row.AccountID,
		Direction:              domain.Direction(row.Direction),
		Amount:                 amount,
		AccountPreviousBalance: previous,
		AccountCurrentBalance:  current,
		AccountVersion:         row.AccountVersion,
		CreatedAt:              row.CreatedAt.Time,
	}, nil
}
