package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/iho/vcledger/internal/domain"
	"github.com/iho/vcledger/internal/usecase"
)

// OutboxRepository implements usecase.OutboxRepository.
type OutboxRepository struct {
	db *sql.DB
}

// NewOutboxRepository creates a new OutboxRepository.
func NewOutboxRepository(db *sql.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// Create creates a new outbox event within a transaction.
func (r *OutboxRepository) Create(ctx context.Context, tx usecase.Tx, event *domain.OutboxEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}

	_, err = sqlTx(tx).ExecContext(ctx,
		`INSERT INTO outbox_events (id, tenant, aggregate_id, aggregate_type, event_type, payload, created_at, published)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Tenant, event.AggregateID, event.AggregateType, event.EventType,
		string(payload), toMillis(event.CreatedAt), event.Published,
	)
	return err
}

// GetUnpublished retrieves unpublished events, oldest first.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tenant, aggregate_id, aggregate_type, event_type, payload, created_at, published_at, published
		 FROM outbox_events WHERE published = 0 ORDER BY created_at, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := []*domain.OutboxEvent{}
	for rows.Next() {
		var (
			event       domain.OutboxEvent
			payload     string
			createdAt   int64
			publishedAt sql.NullInt64
		)
		if err := rows.Scan(&event.ID, &event.Tenant, &event.AggregateID, &event.AggregateType, &event.EventType,
			&payload, &createdAt, &publishedAt, &event.Published); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(payload), &event.Payload)
		event.CreatedAt = fromMillis(createdAt)
		event.PublishedAt = nullMillis(publishedAt)
		events = append(events, &event)
	}
	return events, rows.Err()
}

// MarkPublished marks an event as published.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE outbox_events SET published = 1, published_at = ? WHERE id = ?`,
		toMillis(publishedAt), id)
	return err
}

// DeletePublished deletes published events older than the given time.
func (r *OutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM outbox_events WHERE published = 1 AND published_at < ?`, toMillis(before))
	return err
}
