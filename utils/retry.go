package utils

import (
	"context"
	"time"
)

// RetryPolicy retries an operation with exponential backoff. It is the
// one policy applied to every external-dependency call (email, blob
// uploads) instead of ad hoc retry loops.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

// DefaultRetryPolicy matches the transient-failure profile of SMTP and
// upload endpoints: 3 attempts, 1s base delay, doubling.
var DefaultRetryPolicy = RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2}

// Do runs op until it succeeds, attempts run out, or ctx is cancelled.
// The last error is returned unwrapped so callers can inspect it.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := p.BaseDelay
	if delay <= 0 {
		delay = time.Second
	}
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = op(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay = time.Duration(float64(delay) * multiplier)
	}
	return err
}
