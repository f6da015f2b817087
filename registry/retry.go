package registry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMaxRetries = errors.New("max tries exceeded")
)

// iteration returns whether a failed attempt may be retried.
type iteration = func() (bool, error)

type retrySettings struct {
	MaxTries           int
	TimeBetweenRetries time.Duration
	BackoffFactor      float64
}

type maxRetriesError struct {
	loopErr error
}

func (e *maxRetriesError) Error() string {
	return fmt.Sprintf("%v: %v", ErrMaxRetries, e.loopErr)
}

func (e *maxRetriesError) Unwrap() []error {
	return []error{ErrMaxRetries, e.loopErr}
}

// withRetry runs fn up to MaxTries times, waiting between attempts and growing the delay by BackoffFactor.
// A context cancellation stops waiting and returns the context's error.
func withRetry(ctx context.Context, settings retrySettings, fn iteration) error {
	if settings.MaxTries < 1 {
		settings.MaxTries = 1
	}
	if settings.BackoffFactor < 1 {
		settings.BackoffFactor = 1
	}
	var (
		shouldRetry bool
		iterErr     error
	)
	delay := settings.TimeBetweenRetries
	for i := 0; i < settings.MaxTries; i++ {
		if i > 0 && delay > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * settings.BackoffFactor)
		} else if err := ctx.Err(); err != nil {
			return err
		}

		shouldRetry, iterErr = fn()
		if iterErr != nil && shouldRetry {
			continue
		}
		return iterErr
	}
	if settings.MaxTries == 1 {
		return iterErr
	}
	return &maxRetriesError{iterErr}
}
