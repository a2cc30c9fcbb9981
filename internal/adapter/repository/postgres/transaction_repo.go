package postgres

import (
	"context"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/infrastructure/postgres/generated"
	"github.com/iho/vcledger/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	queries *generated.Queries
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db generated.DBTX) *TransactionRepository {
	return &TransactionRepository{queries: generated.New(db)}
}

// Create inserts the transaction header. A second correction for the same
// target violates the reverses_id unique key and yields domain.ErrAlreadyReversed.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, txn *domain.Transaction) error {
	err := queriesFor(tx).CreateTransaction(ctx, generated.CreateTransactionParams{
		ID:         txn.ID,
		Tenant:     txn.Tenant,
		AssetID:    txn.AssetID,
		Kind:       string(txn.Kind),
		Memo:       txn.Memo,
		ReversesID: stringPtrToText(txn.ReversesID),
		CreatedAt:  timeToPgTimestamptz(txn.CreatedAt),
	})

	return mapError(err, nil)
}

// GetByID retrieves a transaction header.
func (r *TransactionRepository) GetByID(ctx context.Context, tenant, id string) (*domain.Transaction, error) {
	return getTransactionByID(ctx, r.queries, tenant, id)
}

// GetByIDTx retrieves a transaction header inside tx.
func (r *TransactionRepository) GetByIDTx(ctx context.Context, tx usecase.Tx, tenant, id string) (*domain.Transaction, error) {
	return getTransactionByID(ctx, queriesFor(tx), tenant, id)
}

func getTransactionByID(ctx context.Context, q *generated.Queries, tenant, id string) (*domain.Transaction, error) {
	row, err := q.GetTransactionByID(ctx, generated.GetTransactionByIDParams{Tenant: tenant, ID: id})
	if err != nil {
		return nil, mapError(err, domain.ErrTransactionNotFound)
	}

	return rowToTransaction(row), nil
}

// GetReversalTx returns the correction reversing id, or domain.ErrTransactionNotFound.
func (r *TransactionRepository) GetReversalTx(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error) {
	row, err := queriesFor(tx).GetReversal(ctx, stringPtrToText(&id))
	if err != nil {
		return nil, mapError(err, domain.ErrTransactionNotFound)
	}

	return rowToTransaction(row), nil
}

func rowToTransaction(row generated.Transaction) *domain.Transaction {
	return &domain.Transaction{
		ID:         row.ID,
		Tenant:     row.Tenant,
		AssetID:    row.AssetID,
		Kind:       domain.TransactionKind(row.Kind),
		Memo:       row.Memo,
		ReversesID: textToStringPtr(row.ReversesID),
		CreatedAt:  row.CreatedAt.Time,
	}
}
