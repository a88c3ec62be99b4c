package services

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"chronotes/store"
)

// RetryPolicy bounds how often a transient remote-store failure is retried
// before it is surfaced to the caller. Validation and not-found errors are
// never retried.
type RetryPolicy struct {
	MaxAttempts     uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     2 * time.Second,
	}
}

// Do runs op, retrying with exponential backoff until it succeeds, returns a
// permanent error, or the attempt budget is exhausted. Not-found is treated
// as permanent so a missing document is not hammered MaxAttempts times.
func (p RetryPolicy) Do(ctx context.Context, op func() error) error {
	if p.MaxAttempts == 0 {
		p = DefaultRetryPolicy()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialInterval
	bo.MaxInterval = p.MaxInterval

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrAlreadyExists) {
			return backoff.Permanent(err)
		}
		return err
	}

	return backoff.Retry(wrapped, backoff.WithContext(
		backoff.WithMaxRetries(bo, p.MaxAttempts-1), ctx))
}
