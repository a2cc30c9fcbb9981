package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a store transaction
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultBalanceCacheTTL is how long a cached balance may be served
	DefaultBalanceCacheTTL = 5 * time.Minute

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
