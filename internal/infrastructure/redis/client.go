package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// KeyPrefix scopes every key and channel the ledger owns, so a Redis shared
// with a bot or another service stays readable.
const KeyPrefix = "vcledger:"

// ClientName is reported to the server for CLIENT LIST.
const ClientName = "vcledger"

const pingTimeout = 5 * time.Second

// Namespace returns the key prefix for one kind of ledger data,
// e.g. Namespace("cache") is "vcledger:cache:".
func Namespace(kind string) string {
	return KeyPrefix + kind + ":"
}

// NewClient connects to redisURL and pings it. The ping gets its own
// deadline so a blackholed address fails startup instead of hanging it.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}
	if opts.ClientName == "" {
		opts.ClientName = ClientName
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Str("addr", opts.Addr).Msg("failed to close redis client")
		}
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	return client, nil
}
