package usecase

import (
	"context"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/iho/vcledger/internal/domain"
)

// ReconciliationUseCase audits materialized balances against the entry log.
type ReconciliationUseCase struct {
	ledger      *LedgerUseCase
	assetRepo   AssetRepository
	accountRepo AccountRepository
	entryRepo   EntryRepository
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(ledger *LedgerUseCase) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		ledger:      ledger,
		assetRepo:   ledger.assetRepo,
		accountRepo: ledger.accountRepo,
		entryRepo:   ledger.entryRepo,
	}
}

// Audit folds every entry of the tenant and compares the result with each
// account's stored balance. Drift is always reported; it is rewritten only
// when confirm is set. Entries are never modified.
func (uc *ReconciliationUseCase) Audit(ctx context.Context, tenant string, confirm bool) (*domain.AuditReport, error) {
	if err := domain.ValidateTenant(tenant); err != nil {
		return nil, err
	}

	var report *domain.AuditReport
	err := uc.ledger.execute(ctx, "audit", func(ctx context.Context, uow *unitOfWork) error {
		now := uc.ledger.now().UTC()
		report = &domain.AuditReport{
			Tenant:                 tenant,
			CheckedAt:              now,
			Drifts:                 []domain.Drift{},
			UnbalancedTransactions: []string{},
			NonConservedAssets:     []domain.AssetImbalance{},
		}

		assets, err := uc.assetRepo.ListAllTx(ctx, uow.tx, tenant)
		if err != nil {
			return err
		}
		assetMap := make(map[string]*domain.Asset, len(assets))
		for _, a := range assets {
			assetMap[a.ID] = a
		}

		// Lock every account first so no posting lands between fold and compare.
		accounts, err := uc.accountRepo.ListByTenantForUpdate(ctx, uow.tx, tenant)
		if err != nil {
			return err
		}

		entries, err := uc.entryRepo.ListByTenantTx(ctx, uow.tx, tenant)
		if err != nil {
			return err
		}

		expected := make(map[string]domain.Amount, len(accounts))
		byTransaction := make(map[string][]*domain.Entry)
		for _, e := range entries {
			expected[e.AccountID] = expected[e.AccountID].Add(e.Signed())
			byTransaction[e.TransactionID] = append(byTransaction[e.TransactionID], e)
		}

		report.AccountsChecked = len(accounts)
		report.TransactionsChecked = len(byTransaction)

		txnIDs := make([]string, 0, len(byTransaction))
		for id := range byTransaction {
			txnIDs = append(txnIDs, id)
		}
		sort.Strings(txnIDs)
		for _, id := range txnIDs {
			if !domain.EntriesBalanced(byTransaction[id]) {
				report.UnbalancedTransactions = append(report.UnbalancedTransactions, id)
			}
		}

		net := make(map[string]domain.Amount)
		var assetOrder []string
		for _, acc := range accounts {
			if _, seen := net[acc.AssetID]; !seen {
				assetOrder = append(assetOrder, acc.AssetID)
			}

			want := expected[acc.ID]
			if want.Equal(acc.Balance) {
				net[acc.AssetID] = net[acc.AssetID].Add(acc.Balance)
				continue
			}

			drift := domain.Drift{
				AssetID:   acc.AssetID,
				AccountID: acc.ID,
				Holder:    acc.Holder,
				Kind:      acc.Kind,
				Expected:  want,
				Actual:    acc.Balance,
			}
			asset := assetMap[acc.AssetID]
			if asset != nil {
				drift.Symbol = asset.Symbol
			}

			if confirm {
				if err := uc.accountRepo.UpdateBalance(ctx, uow.tx, acc.ID, want, now); err != nil {
					return err
				}
				drift.Fixed = true
				if asset != nil && acc.Kind == domain.AccountKindUser {
					uow.touch(balanceCacheKey(tenant, asset.Symbol, acc.Holder), want, acc.Version+1)
				}
			}

			// Conservation is judged on the balances the audit leaves behind.
			if drift.Fixed {
				net[acc.AssetID] = net[acc.AssetID].Add(want)
			} else {
				net[acc.AssetID] = net[acc.AssetID].Add(acc.Balance)
			}

			report.Drifts = append(report.Drifts, drift)
		}

		for _, assetID := range assetOrder {
			if net[assetID].IsZero() {
				continue
			}
			imbalance := domain.AssetImbalance{AssetID: assetID, Net: net[assetID]}
			if asset := assetMap[assetID]; asset != nil {
				imbalance.Symbol = asset.Symbol
			}
			report.NonConservedAssets = append(report.NonConservedAssets, imbalance)
		}

		report.Repaired = confirm && len(report.Drifts) > 0
		if report.Repaired {
			event := &domain.OutboxEvent{
				ID:            uc.ledger.idGen.Generate(),
				Tenant:        tenant,
				AggregateID:   tenant,
				AggregateType: domain.AggregateTypeTenant,
				EventType:     domain.EventTypeBalancesRepaired,
				Payload:       map[string]any{"drifts": len(report.Drifts)},
				CreatedAt:     now,
			}
			if err := uc.ledger.emit(ctx, uow, event); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(report.Drifts) > 0 || len(report.UnbalancedTransactions) > 0 {
		log.Warn().
			Str("tenant", tenant).
			Int("drifts", len(report.Drifts)).
			Int("unbalanced_transactions", len(report.UnbalancedTransactions)).
			Int("non_conserved_assets", len(report.NonConservedAssets)).
			Bool("repaired", report.Repaired).
			Msg("ledger audit found discrepancies")
	}
	uc.ledger.metrics.DriftDetected(len(report.Drifts))

	return report, nil
}
