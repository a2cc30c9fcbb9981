package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/vcledger/internal/domain"
)

func TestPublisherPublish(t *testing.T) {
	client, _ := newTestRedisClient(t)

	ctx := context.Background()
	sub := client.Subscribe(ctx, "ledger-events")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher := NewPublisher(client, "ledger-events")
	err = publisher.Publish(ctx, &domain.OutboxEvent{
		ID:            "evt-1",
		Tenant:        "guild-1",
		AggregateID:   "txn-1",
		AggregateType: domain.AggregateTypeTransaction,
		EventType:     domain.EventTypeTransactionPosted,
		Payload:       map[string]any{"symbol": "GOLD"},
		CreatedAt:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	select {
	case msg := <-sub.Channel():
		var decoded eventMessage
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &decoded))
		assert.Equal(t, "evt-1", decoded.ID)
		assert.Equal(t, "guild-1", decoded.Tenant)
		assert.Equal(t, domain.EventTypeTransactionPosted, decoded.EventType)
		assert.Equal(t, "GOLD", decoded.Payload["symbol"])
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestNewPublisherDefaultChannel(t *testing.T) {
	assert.Equal(t, "vcledger:events", NewPublisher(nil, "").channel)
}
