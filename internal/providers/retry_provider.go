package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/metrics"
)

const (
	defaultRetryAttempts = 3
	defaultBackoff       = 200 * time.Millisecond
	maxBackoff           = 5 * time.Second
)

type fetchFunc func(ctx context.Context) ([]matches.Match, error)

// retryingProvider wraps a MatchProvider with retry/backoff behavior.
type retryingProvider struct {
	inner        MatchProvider
	logger       *slog.Logger
	metrics      *metrics.Recorder
	providerName string
	maxAttempts  int
	newBackOff   func() backoff.BackOff
}

// NewRetryingProvider wraps the given provider with exponential backoff retries.
// If maxAttempts/base are <= 0, defaults are used. Rate limit responses wait for their Retry-After instead.
func NewRetryingProvider(inner MatchProvider, logger *slog.Logger, recorder *metrics.Recorder, providerName string, maxAttempts int, base time.Duration) MatchProvider {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if base <= 0 {
		base = defaultBackoff
	}
	if providerName == "" {
		providerName = "provider"
	}
	return &retryingProvider{
		inner:        inner,
		logger:       logger,
		metrics:      recorder,
		providerName: providerName,
		maxAttempts:  maxAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = base
			b.MaxInterval = maxBackoff
			b.MaxElapsedTime = 0
			b.Reset()
			return b
		},
	}
}

func (r *retryingProvider) FetchLiveMatches(ctx context.Context) ([]matches.Match, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	return r.do(ctx, "live", r.inner.FetchLiveMatches)
}

func (r *retryingProvider) FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	if r.inner == nil {
		return nil, ErrProviderUnavailable
	}
	return r.do(ctx, date, func(ctx context.Context) ([]matches.Match, error) {
		return r.inner.FetchMatchesByDate(ctx, date)
	})
}

func (r *retryingProvider) do(ctx context.Context, target string, fetch fetchFunc) ([]matches.Match, error) {
	bo := r.newBackOff()
	var lastErr error

	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		start := time.Now()
		result, err := fetch(ctx)
		r.metrics.RecordProviderAttempt(r.providerName, time.Since(start), err)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if rlErr, ok := AsRateLimitError(err); ok {
			r.metrics.RecordRateLimit(r.providerName, rlErr.RetryAfter)
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt == r.maxAttempts {
			break
		}

		delay := r.computeDelay(err, bo)
		if delay == backoff.Stop {
			break
		}
		logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch retry",
			"target", target, "attempt", attempt, "max_attempts", r.maxAttempts, "delay", delay, "err", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	logWithProvider(ctx, r.logger, slog.LevelWarn, r.providerName, "provider fetch failed",
		"target", target, "attempts", r.maxAttempts, "err", lastErr)
	return nil, lastErr
}

// computeDelay prefers an upstream Retry-After over the backoff schedule.
func (r *retryingProvider) computeDelay(err error, bo backoff.BackOff) time.Duration {
	next := bo.NextBackOff()
	if rlErr, ok := AsRateLimitError(err); ok && rlErr.RetryAfter > 0 {
		return rlErr.RetryAfter
	}
	return next
}
