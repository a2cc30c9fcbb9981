package usecase_test

import (
	"fmt"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
	"github.com/iho/vcledger/internal/usecase/mocks"
)

type ledgerMocks struct {
	txManager    *mocks.MockTxManager
	tx           *mocks.MockTx
	assets       *mocks.MockAssetRepository
	accounts     *mocks.MockAccountRepository
	transactions *mocks.MockTransactionRepository
	entries      *mocks.MockEntryRepository
	outbox       *mocks.MockOutboxRepository
	idGen        *mocks.MockIDGenerator
}

func newLedger(t *testing.T) (*ledgerMocks, *usecase.LedgerUseCase) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &ledgerMocks{
		txManager:    mocks.NewMockTxManager(ctrl),
		tx:           mocks.NewMockTx(ctrl),
		assets:       mocks.NewMockAssetRepository(ctrl),
		accounts:     mocks.NewMockAccountRepository(ctrl),
		transactions: mocks.NewMockTransactionRepository(ctrl),
		entries:      mocks.NewMockEntryRepository(ctrl),
		outbox:       mocks.NewMockOutboxRepository(ctrl),
		idGen:        mocks.NewMockIDGenerator(ctrl),
	}

	n := 0
	m.idGen.EXPECT().Generate().DoAndReturn(func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}).AnyTimes()

	ledger := usecase.NewLedgerUseCase(m.txManager, m.assets, m.accounts, m.transactions, m.entries, m.outbox, m.idGen)
	return m, ledger
}

// expectTx expects one store transaction that either commits or only rolls back.
func (m *ledgerMocks) expectTx(commit bool) {
	m.txManager.EXPECT().Begin(gomock.Any()).Return(m.tx, nil)
	if commit {
		m.tx.EXPECT().Commit(gomock.Any()).Return(nil)
	}
	m.tx.EXPECT().Rollback(gomock.Any()).Return(nil)
}

func goldAsset() *domain.Asset {
	return &domain.Asset{
		ID:        "asset-gold",
		Tenant:    "guild-1",
		Symbol:    "GOLD",
		Name:      "Gold",
		Decimals:  2,
		CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func account(id, holder string, kind domain.AccountKind, units int64) *domain.Account {
	return &domain.Account{
		ID:      id,
		Tenant:  "guild-1",
		AssetID: "asset-gold",
		Holder:  holder,
		Kind:    kind,
		Balance: domain.NewAmount(units),
		Version: 1,
	}
}

// amountIs matches a domain.Amount by value.
type amountIs int64

func (a amountIs) Matches(x any) bool {
	amount, ok := x.(domain.Amount)
	return ok && amount.Equal(domain.NewAmount(int64(a)))
}

func (a amountIs) String() string {
	return fmt.Sprintf("amount equal to %d units", int64(a))
}
