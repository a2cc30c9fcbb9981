package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/vcledger/internal/domain"
	rediskit "github.com/iho/vcledger/internal/infrastructure/redis"
)

// Publisher sends outbox events to a Redis pub/sub channel. Subscribers
// (a Discord bot, for one) receive every event of every tenant and filter
// on the tenant field.
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher creates a new Publisher.
func NewPublisher(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = rediskit.KeyPrefix + "events"
	}
	return &Publisher{client: client, channel: channel}
}

type eventMessage struct {
	ID            string         `json:"id"`
	Tenant        string         `json:"tenant"`
	EventType     string         `json:"event_type"`
	AggregateType string         `json:"aggregate_type"`
	AggregateID   string         `json:"aggregate_id"`
	Payload       map[string]any `json:"payload"`
	CreatedAt     time.Time      `json:"created_at"`
}

// Publish publishes one event as JSON.
func (p *Publisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	msg, err := json.Marshal(eventMessage{
		ID:            event.ID,
		Tenant:        event.Tenant,
		EventType:     event.EventType,
		AggregateType: event.AggregateType,
		AggregateID:   event.AggregateID,
		Payload:       event.Payload,
		CreatedAt:     event.CreatedAt,
	})
	if err != nil {
		return err
	}

	return p.client.Publish(ctx, p.channel, msg).Err()
}
