package marketdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

const (
	DefaultMaxAttempts    = 3
	DefaultBaseDelay      = time.Second
	DefaultMaxDelay       = 30 * time.Second
	DefaultAttemptTimeout = 10 * time.Second
)

var _ Provider = (*retryProvider)(nil)

// retryProvider retries a flaky upstream with exponential backoff.
// Exhaustion surfaces as ErrPriceUnavailable / ErrHistoryUnavailable,
// never the raw transport error.
type retryProvider struct {
	next           Provider
	maxAttempts    int
	baseDelay      time.Duration
	maxDelay       time.Duration
	attemptTimeout time.Duration
}

type RetryOption func(p *retryProvider)

func WithMaxAttempts(n int) RetryOption {
	return func(p *retryProvider) {
		if n > 0 {
			p.maxAttempts = n
		}
	}
}

func WithBaseDelay(d time.Duration) RetryOption {
	return func(p *retryProvider) {
		p.baseDelay = d
	}
}

func WithAttemptTimeout(d time.Duration) RetryOption {
	return func(p *retryProvider) {
		p.attemptTimeout = d
	}
}

func WithRetry(next Provider, opts ...RetryOption) Provider {
	p := &retryProvider{
		next:           next,
		maxAttempts:    DefaultMaxAttempts,
		baseDelay:      DefaultBaseDelay,
		maxDelay:       DefaultMaxDelay,
		attemptTimeout: DefaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *retryProvider) newBackOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.baseDelay
	b.Multiplier = 2
	b.MaxInterval = p.maxDelay
	b.RandomizationFactor = 0
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(p.maxAttempts-1)), ctx)
}

func (p *retryProvider) attempt(ctx context.Context, fn func(ctx context.Context) error) error {
	attemptCtx, cancel := context.WithTimeout(ctx, p.attemptTimeout)
	defer cancel()
	return fn(attemptCtx)
}

func (p *retryProvider) CurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	var price decimal.Decimal
	err := backoff.Retry(func() error {
		return p.attempt(ctx, func(ctx context.Context) error {
			var err error
			price, err = p.next.CurrentPrice(ctx, symbol)
			return err
		})
	}, p.newBackOff(ctx))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s after %d attempts: %v", ErrPriceUnavailable, symbol, p.maxAttempts, err)
	}
	return price, nil
}

func (p *retryProvider) HistoricalSeries(ctx context.Context, symbol string, minPoints int) (Series, error) {
	var series Series
	err := backoff.Retry(func() error {
		return p.attempt(ctx, func(ctx context.Context) error {
			var err error
			series, err = p.next.HistoricalSeries(ctx, symbol, minPoints)
			if errors.Is(err, ErrHistoryUnavailable) {
				// a short series will not grow between attempts
				return backoff.Permanent(err)
			}
			return err
		})
	}, p.newBackOff(ctx))
	if err != nil {
		if errors.Is(err, ErrHistoryUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrHistoryUnavailable, symbol, err)
	}
	return series, nil
}
