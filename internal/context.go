package internal

import (
	"context"
	"time"
)

// DefaultOpTimeout bounds a single store call when no explicit timeout is configured.
var DefaultOpTimeout = 10 * time.Second

// WithTimeout returns a context with timeout, falling back to DefaultOpTimeout if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = DefaultOpTimeout
	}
	return context.WithTimeout(ctx, duration)
}
