package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers the result of an operation keyed by a
// client-supplied idempotency key, so a retried request can be answered
// with the original result instead of being executed again.
type IdempotencyStore interface {
	// Remember stores the result for a key with a TTL.
	// Returns true if the key was newly stored, false if a result
	// already existed for it.
	Remember(ctx context.Context, key, result string, ttl time.Duration) (bool, error)

	// Lookup returns the stored result for a key.
	// The second return value is false when no result is stored.
	Lookup(ctx context.Context, key string) (string, bool, error)

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is the time-to-live for remembered results.
	// After this duration, the same key starts a fresh execution.
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
