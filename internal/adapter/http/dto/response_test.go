package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

func goldAsset() *domain.Asset {
	return &domain.Asset{ID: "asset-gold", Symbol: "GOLD", Name: "Gold", Decimals: 2}
}

func TestTransactionFromDomain(t *testing.T) {
	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	txn := &domain.Transaction{
		ID:        "txn-1",
		Kind:      domain.TransactionKindPay,
		Memo:      "lunch",
		CreatedAt: created,
		Entries: []*domain.Entry{
			{ID: "e-1", AccountID: "acc-alice", Direction: domain.Debit, Amount: domain.NewAmount(1250), AccountCurrentBalance: domain.NewAmount(0)},
			{ID: "e-2", AccountID: "acc-bob", Direction: domain.Credit, Amount: domain.NewAmount(1250), AccountCurrentBalance: domain.NewAmount(1250)},
		},
	}

	resp := TransactionFromDomain(txn, goldAsset())

	if resp.Symbol != "GOLD" || resp.Kind != "pay" || resp.Memo != "lunch" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if len(resp.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(resp.Entries))
	}
	if resp.Entries[0].Amount != "12.50" || resp.Entries[0].BalanceAfter != "0.00" {
		t.Fatalf("unexpected debit entry: %+v", resp.Entries[0])
	}
	if resp.Entries[1].Direction != "credit" || resp.Entries[1].BalanceAfter != "12.50" {
		t.Fatalf("unexpected credit entry: %+v", resp.Entries[1])
	}
}

func TestHoldingAndTreasuryFromUseCase(t *testing.T) {
	holdings := HoldingsFromUseCase([]*usecase.Holding{{Asset: goldAsset(), Balance: domain.NewAmount(4200)}})
	if len(holdings) != 1 || holdings[0].Balance != "42.00" {
		t.Fatalf("unexpected holdings: %+v", holdings)
	}

	positions := TreasuryFromUseCase([]*usecase.TreasuryPosition{{
		Asset:    goldAsset(),
		Treasury: domain.NewAmount(-500),
		Burned:   domain.NewAmount(25),
	}})
	if positions[0].Treasury != "-5.00" || positions[0].Burned != "0.25" {
		t.Fatalf("unexpected treasury: %+v", positions[0])
	}
}

func TestAuditFromDomainMarshalsReport(t *testing.T) {
	report := &domain.AuditReport{Tenant: "guild-1", AccountsChecked: 3}

	body, err := json.Marshal(AuditFromDomain(report))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded["clean"] != true || decoded["tenant"] != "guild-1" || decoded["accounts_checked"] != float64(3) {
		t.Fatalf("unexpected audit json: %s", body)
	}
}
