package sqlite

import (
	"context"
	"database/sql"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

const transactionColumns = `id, tenant, asset_id, kind, memo, reverses_id, created_at`

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create inserts the transaction header.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	_, err := sqlTx(tx).ExecContext(ctx,
		`INSERT INTO transactions (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		txn.ID, txn.Tenant, txn.AssetID, string(txn.Kind), txn.Memo, nullString(txn.ReversesID), toMillis(txn.CreatedAt),
	)
	return mapError(err, nil)
}

// GetByID retrieves a transaction header.
func (r *TransactionRepository) GetByID(ctx context.Context, tenant, id string) (*domain.Transaction, error) {
	return getTransaction(ctx, r.db, `WHERE tenant = ? AND id = ?`, tenant, id)
}

// GetByIDTx retrieves a transaction header inside tx.
func (r *TransactionRepository) GetByIDTx(ctx context.Context, tx usecase.Tx, tenant, id string) (*domain.Transaction, error) {
	return getTransaction(ctx, sqlTx(tx), `WHERE tenant = ? AND id = ?`, tenant, id)
}

// GetReversalTx returns the correction reversing id, or domain.ErrTransactionNotFound.
func (r *TransactionRepository) GetReversalTx(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error) {
	return getTransaction(ctx, sqlTx(tx), `WHERE reverses_id = ?`, id)
}

func getTransaction(ctx context.Context, db dbtx, where string, args ...any) (*domain.Transaction, error) {
	var (
		txn        domain.Transaction
		kind       string
		reversesID sql.NullString
		createdAt  int64
	)
	err := db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM transactions `+where, args...).
		Scan(&txn.ID, &txn.Tenant, &txn.AssetID, &kind, &txn.Memo, &reversesID, &createdAt)
	if err != nil {
		return nil, mapError(err, domain.ErrTransactionNotFound)
	}

	txn.Kind = domain.TransactionKind(kind)
	txn.ReversesID = stringPtr(reversesID)
	txn.CreatedAt = fromMillis(createdAt)
	return &txn, nil
}
