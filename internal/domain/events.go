package domain

import "time"

// Event types
const (
	EventTypeTransactionPosted = "transaction.posted"
	EventTypeAssetCreated      = "asset.created"
	EventTypeAssetDeleted      = "asset.deleted"
	EventTypeBalancesRepaired  = "ledger.repaired"
)

// Aggregate types
const (
	AggregateTypeTransaction = "transaction"
	AggregateTypeAsset       = "asset"
	AggregateTypeTenant      = "tenant"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	Tenant        string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// NewTransactionPostedEvent builds the outbox event for a committed transaction.
func NewTransactionPostedEvent(id string, asset *Asset, txn *Transaction) *OutboxEvent {
	entries := make([]map[string]any, 0, len(txn.Entries))
	for _, e := range txn.Entries {
		entries = append(entries, map[string]any{
			"account_id": e.AccountID,
			"direction":  string(e.Direction),
			"amount":     asset.FormatAmount(e.Amount),
		})
	}

	return &OutboxEvent{
		ID:            id,
		Tenant:        txn.Tenant,
		AggregateID:   txn.ID,
		AggregateType: AggregateTypeTransaction,
		EventType:     EventTypeTransactionPosted,
		Payload: map[string]any{
			"transaction_id": txn.ID,
			"kind":           string(txn.Kind),
			"symbol":         asset.Symbol,
			"memo":           txn.Memo,
			"entries":        entries,
		},
		CreatedAt: txn.CreatedAt,
	}
}

// NewAssetEvent builds an asset lifecycle event.
func NewAssetEvent(id, eventType string, asset *Asset, at time.Time) *OutboxEvent {
	return &OutboxEvent{
		ID:            id,
		Tenant:        asset.Tenant,
		AggregateID:   asset.ID,
		AggregateType: AggregateTypeAsset,
		EventType:     eventType,
		Payload: map[string]any{
			"asset_id": asset.ID,
			"symbol":   asset.Symbol,
			"name":     asset.Name,
			"decimals": asset.Decimals,
		},
		CreatedAt: at,
	}
}
