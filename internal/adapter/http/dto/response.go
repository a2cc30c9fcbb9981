package dto

import (
	"time"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AssetResponse represents an asset.
type AssetResponse struct {
	ID        string    `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Decimals  int32     `json:"decimals"`
	CreatedAt time.Time `json:"created_at"`
}

// AssetFromDomain converts a domain asset.
func AssetFromDomain(a *domain.Asset) AssetResponse {
	return AssetResponse{
		ID:        a.ID,
		Symbol:    a.Symbol,
		Name:      a.Name,
		Decimals:  a.Decimals,
		CreatedAt: a.CreatedAt,
	}
}

// AssetsFromDomain converts a list of assets.
func AssetsFromDomain(assets []*domain.Asset) []AssetResponse {
	result := make([]AssetResponse, len(assets))
	for i, a := range assets {
		result[i] = AssetFromDomain(a)
	}
	return result
}

// AccountResponse represents an account. Balance is formatted in the
// asset's decimals.
type AccountResponse struct {
	ID      string `json:"id"`
	Symbol  string `json:"symbol"`
	Holder  string `json:"holder,omitempty"`
	Kind    string `json:"kind"`
	Balance string `json:"balance"`
	Version int64  `json:"version"`
}

// AccountFromDomain converts a domain account.
func AccountFromDomain(acc *domain.Account, asset *domain.Asset) AccountResponse {
	return AccountResponse{
		ID:      acc.ID,
		Symbol:  asset.Symbol,
		Holder:  acc.Holder,
		Kind:    string(acc.Kind),
		Balance: asset.FormatAmount(acc.Balance),
		Version: acc.Version,
	}
}

// EntryResponse represents one side of a transaction.
type EntryResponse struct {
	ID           string `json:"id"`
	AccountID    string `json:"account_id"`
	Direction    string `json:"direction"`
	Amount       string `json:"amount"`
	BalanceAfter string `json:"balance_after"`
}

// TransactionResponse represents a transaction with its entries.
type TransactionResponse struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	Symbol     string          `json:"symbol"`
	Memo       string          `json:"memo,omitempty"`
	ReversesID *string         `json:"reverses_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	Entries    []EntryResponse `json:"entries"`
}

// TransactionFromDomain converts a domain transaction.
func TransactionFromDomain(t *domain.Transaction, asset *domain.Asset) TransactionResponse {
	entries := make([]EntryResponse, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = EntryResponse{
			ID:           e.ID,
			AccountID:    e.AccountID,
			Direction:    string(e.Direction),
			Amount:       asset.FormatAmount(e.Amount),
			BalanceAfter: asset.FormatAmount(e.AccountCurrentBalance),
		}
	}

	return TransactionResponse{
		ID:         t.ID,
		Kind:       string(t.Kind),
		Symbol:     asset.Symbol,
		Memo:       t.Memo,
		ReversesID: t.ReversesID,
		CreatedAt:  t.CreatedAt,
		Entries:    entries,
	}
}

// HoldingResponse represents a holder's balance in one asset.
type HoldingResponse struct {
	Symbol  string `json:"symbol"`
	Name    string `json:"name"`
	Balance string `json:"balance"`
}

// HoldingFromUseCase converts a holding.
func HoldingFromUseCase(h *usecase.Holding) HoldingResponse {
	return HoldingResponse{
		Symbol:  h.Asset.Symbol,
		Name:    h.Asset.Name,
		Balance: h.Asset.FormatAmount(h.Balance),
	}
}

// HoldingsFromUseCase converts a list of holdings.
func HoldingsFromUseCase(holdings []*usecase.Holding) []HoldingResponse {
	result := make([]HoldingResponse, len(holdings))
	for i, h := range holdings {
		result[i] = HoldingFromUseCase(h)
	}
	return result
}

// TreasuryResponse represents the system side of one asset.
type TreasuryResponse struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Treasury string `json:"treasury"`
	Burned   string `json:"burned"`
}

// TreasuryFromUseCase converts treasury positions.
func TreasuryFromUseCase(positions []*usecase.TreasuryPosition) []TreasuryResponse {
	result := make([]TreasuryResponse, len(positions))
	for i, p := range positions {
		result[i] = TreasuryResponse{
			Symbol:   p.Asset.Symbol,
			Name:     p.Asset.Name,
			Treasury: p.Asset.FormatAmount(p.Treasury),
			Burned:   p.Asset.FormatAmount(p.Burned),
		}
	}
	return result
}

// HistoryEntryResponse is one line of a holder's statement.
type HistoryEntryResponse struct {
	TransactionID string    `json:"transaction_id"`
	Kind          string    `json:"kind"`
	Symbol        string    `json:"symbol"`
	Direction     string    `json:"direction"`
	Amount        string    `json:"amount"`
	BalanceAfter  string    `json:"balance_after"`
	Memo          string    `json:"memo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// HistoryFromUseCase converts holder entries.
func HistoryFromUseCase(entries []*usecase.HolderEntry) []HistoryEntryResponse {
	result := make([]HistoryEntryResponse, len(entries))
	for i, he := range entries {
		result[i] = HistoryEntryResponse{
			TransactionID: he.Entry.TransactionID,
			Kind:          string(he.Transaction.Kind),
			Symbol:        he.Asset.Symbol,
			Direction:     string(he.Entry.Direction),
			Amount:        he.Asset.FormatAmount(he.Entry.Amount),
			BalanceAfter:  he.Asset.FormatAmount(he.Entry.AccountCurrentBalance),
			Memo:          he.Transaction.Memo,
			CreatedAt:     he.Entry.CreatedAt,
		}
	}
	return result
}

// AuditResponse wraps an audit report. Amounts in the report are raw units.
type AuditResponse struct {
	Clean bool `json:"clean"`
	*domain.AuditReport
}

// AuditFromDomain converts an audit report.
func AuditFromDomain(r *domain.AuditReport) AuditResponse {
	return AuditResponse{Clean: r.Clean(), AuditReport: r}
}
