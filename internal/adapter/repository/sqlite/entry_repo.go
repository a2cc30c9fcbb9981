package sqlite

import (
	"context"
	"database/sql"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

const entryColumns = `id, tenant, transaction_id, account_id, direction, amount, account_previous_balance, account_current_balance, account_version, created_at`

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	db *sql.DB
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(db *sql.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create creates a new entry.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Tx, entry *domain.Entry) error {
	_, err := sqlTx(tx).ExecContext(ctx,
		`INSERT INTO entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Tenant, entry.TransactionID, entry.AccountID, string(entry.Direction),
		entry.Amount.String(), entry.AccountPreviousBalance.String(), entry.AccountCurrentBalance.String(),
		entry.AccountVersion, toMillis(entry.CreatedAt),
	)
	return mapError(err, nil)
}

// ListByTransaction retrieves the entries of one transaction in posting order.
func (r *EntryRepository) ListByTransaction(ctx context.Context, transactionID string) ([]*domain.Entry, error) {
	return listEntries(ctx, r.db,
		`SELECT `+entryColumns+` FROM entries WHERE transaction_id = ? ORDER BY id`, transactionID)
}

// ListByTransactionTx is ListByTransaction inside tx.
func (r *EntryRepository) ListByTransactionTx(ctx context.Context, tx usecase.Tx, transactionID string) ([]*domain.Entry, error) {
	return listEntries(ctx, sqlTx(tx),
		`SELECT `+entryColumns+` FROM entries WHERE transaction_id = ? ORDER BY id`, transactionID)
}

// ListByTenantTx retrieves every entry of the tenant.
func (r *EntryRepository) ListByTenantTx(ctx context.Context, tx usecase.Tx, tenant string) ([]*domain.Entry, error) {
	return listEntries(ctx, sqlTx(tx),
		`SELECT `+entryColumns+` FROM entries WHERE tenant = ? ORDER BY id`, tenant)
}

// ListByHolder retrieves entries on holder's user accounts, newest first.
func (r *EntryRepository) ListByHolder(ctx context.Context, tenant, holder string, limit, offset int) ([]*domain.Entry, error) {
	return listEntries(ctx, r.db,
		`SELECT e.id, e.tenant, e.transaction_id, e.account_id, e.direction, e.amount,
		        e.account_previous_balance, e.account_current_balance, e.account_version, e.created_at
		 FROM entries e
		 JOIN accounts a ON a.id = e.account_id
		 WHERE a.tenant = ? AND a.holder = ? AND a.kind = 'user'
		 ORDER BY e.created_at DESC, e.id DESC
		 LIMIT ? OFFSET ?`,
		tenant, holder, limit, offset)
}

func listEntries(ctx context.Context, db dbtx, query string, args ...any) ([]*domain.Entry, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []*domain.Entry{}
	for rows.Next() {
		var (
			e                         domain.Entry
			direction                 string
			amount, previous, current string
			createdAt                 int64
		)
		if err := rows.Scan(&e.ID, &e.Tenant, &e.TransactionID, &e.AccountID, &direction,
			&amount, &previous, &current, &e.AccountVersion, &createdAt); err != nil {
			return nil, err
		}

		if e.Amount, err = domain.ParseUnits(amount); err != nil {
			return nil, err
		}
		if e.AccountPreviousBalance, err = domain.ParseUnits(previous); err != nil {
			return nil, err
		}
		if e.AccountCurrentBalance, err = domain.ParseUnits(current); err != nil {
			return nil, err
		}
		e.Direction = domain.Direction(direction)
		e.CreatedAt = fromMillis(createdAt)
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
