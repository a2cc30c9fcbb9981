package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxManagerCommit(t *testing.T) {
	pool := newMockPool(t)
	pool.ExpectBegin()
	pool.ExpectCommit()

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, queriesFor(tx))

	require.NoError(t, tx.Commit(context.Background()))
	assertExpectations(t, pool)
}

func TestTxManagerBeginFailureIsWrapped(t *testing.T) {
	pool := newMockPool(t)
	connErr := errors.New("connection refused")
	pool.ExpectBegin().WillReturnError(connErr)

	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	assert.Nil(t, tx)
	require.ErrorIs(t, err, connErr)
	assert.Contains(t, err.Error(), "begin ledger transaction")
	assertExpectations(t, pool)
}

func TestTxRollback(t *testing.T) {
	tests := []struct {
		name        string
		rollbackErr error
		wantErr     bool
	}{
		{name: "open transaction"},
		{name: "already committed", rollbackErr: pgx.ErrTxClosed},
		{name: "connection lost", rollbackErr: errors.New("conn closed"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := newMockPool(t)
			pool.ExpectBegin()
			rollback := pool.ExpectRollback()
			if tt.rollbackErr != nil {
				rollback.WillReturnError(tt.rollbackErr)
			}

			tx, err := newTxManagerWithPool(pool).Begin(context.Background())
			require.NoError(t, err)

			err = tx.Rollback(context.Background())
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.rollbackErr)
			} else {
				assert.NoError(t, err)
			}
			assertExpectations(t, pool)
		})
	}
}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	assert.NoError(t, pool.ExpectationsWereMet())
}
