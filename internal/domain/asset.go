package domain

import "time"

// DefaultDecimals is the precision clients offer when none is given.
const DefaultDecimals int32 = 2

// Asset is a currency defined inside one tenant.
type Asset struct {
	ID        string
	Tenant    string
	Symbol    string
	Name      string
	Decimals  int32
	CreatedAt time.Time
	DeletedAt *time.Time
}

// Deleted reports whether the asset has been retired.
func (a *Asset) Deleted() bool {
	return a.DeletedAt != nil
}

// FormatAmount renders an amount of this asset, e.g. "100.00".
func (a *Asset) FormatAmount(amount Amount) string {
	return amount.Format(a.Decimals)
}
