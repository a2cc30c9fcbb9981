package domain

import "time"

// Drift is one account whose materialized balance disagrees with its entries.
type Drift struct {
	AssetID   string      `json:"asset_id"`
	Symbol    string      `json:"symbol"`
	AccountID string      `json:"account_id"`
	Holder    string      `json:"holder"`
	Kind      AccountKind `json:"kind"`
	Expected  Amount      `json:"expected"`
	Actual    Amount      `json:"actual"`
	Fixed     bool        `json:"fixed"`
}

// AssetImbalance is an asset whose account balances do not sum to zero.
type AssetImbalance struct {
	AssetID string `json:"asset_id"`
	Symbol  string `json:"symbol"`
	Net     Amount `json:"net"`
}

// AuditReport is the result of checking one tenant's books.
type AuditReport struct {
	Tenant                 string           `json:"tenant"`
	CheckedAt              time.Time        `json:"checked_at"`
	AccountsChecked        int              `json:"accounts_checked"`
	TransactionsChecked    int              `json:"transactions_checked"`
	Drifts                 []Drift          `json:"drifts"`
	UnbalancedTransactions []string         `json:"unbalanced_transactions"`
	NonConservedAssets     []AssetImbalance `json:"non_conserved_assets"`
	Repaired               bool             `json:"repaired"`
}

// Clean reports whether the audit found nothing wrong.
func (r *AuditReport) Clean() bool {
	return len(r.Drifts) == 0 && len(r.UnbalancedTransactions) == 0 && len(r.NonConservedAssets) == 0
}
