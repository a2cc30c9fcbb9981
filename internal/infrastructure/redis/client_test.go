package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace(t *testing.T) {
	assert.Equal(t, "vcledger:cache:", Namespace("cache"))
	assert.Equal(t, "vcledger:idempotency:", Namespace("idempotency"))
}

func TestNewClientStoresUnderLedgerPrefix(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	client, err := NewClient(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	key := Namespace("cache") + "balance:guild-1:GOLD:alice"
	require.NoError(t, client.Set(ctx, key, "750", 0).Err())

	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "750", got)
}

func TestNewClientErrors(t *testing.T) {
	down := miniredis.RunT(t)
	downURL := "redis://" + down.Addr()
	down.Close()

	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{name: "malformed url", url: "://bad-url", wantErr: "failed to parse redis URL"},
		{name: "wrong scheme", url: "http://localhost:6379", wantErr: "failed to parse redis URL"},
		{name: "server down", url: downURL, wantErr: "failed to ping redis at"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(context.Background(), tt.url)
			require.Error(t, err)
			assert.Nil(t, client)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
