// Package limiter defines interfaces and implementations for rate
// limiting password verification attempts.
package limiter

import (
	"context"
	"time"
)

// Limiter controls verification attempts and temporary lockouts per IP.
type Limiter interface {
	// Allow reports whether verification is currently allowed and optional retry-after.
	Allow(ctx context.Context, ipHash []byte) (bool, time.Duration, error)
	// Success resets counters after a successful verification.
	Success(ctx context.Context, ipHash []byte) error
	// Failure records a failed attempt; may place a temporary block.
	Failure(ctx context.Context, ipHash []byte) (bool, time.Duration, error)
}
