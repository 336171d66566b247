package providers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/live-scores-service/internal/teststubs"
)

func TestRateLimitedProviderSpacesCalls(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, 20*time.Millisecond, nil)

	if _, err := rl.FetchLiveMatches(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	start := time.Now()
	if _, err := rl.FetchMatchesByDate(context.Background(), "2024-01-01"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Fatalf("expected second call to wait for a token, elapsed %s", elapsed)
	}
	if inner.Calls.Load() != 2 {
		t.Fatalf("expected inner provider called twice, got %d", inner.Calls.Load())
	}
}

func TestRateLimitedProviderRespectsCanceledContext(t *testing.T) {
	inner := &teststubs.StubProvider{}
	rl := NewRateLimitedProvider(inner, time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := rl.FetchLiveMatches(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
	if inner.Calls.Load() != 0 {
		t.Fatalf("expected inner provider not called on canceled context")
	}
}

func TestRateLimitedProviderHandlesNilInner(t *testing.T) {
	var inner MatchProvider
	rl := NewRateLimitedProvider(inner, time.Millisecond, nil)

	_, err := rl.FetchLiveMatches(context.Background())
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
}

func TestRateLimitedProviderDefaultsInterval(t *testing.T) {
	rl := NewRateLimitedProvider(&teststubs.StubProvider{}, 0, nil).(*rateLimitedProvider)
	if rl.interval != time.Minute {
		t.Fatalf("expected default interval 1m, got %s", rl.interval)
	}
}

func TestIntervalForRate(t *testing.T) {
	if got := IntervalForRate(10); got != 6*time.Second {
		t.Fatalf("expected 6s for 10/min, got %s", got)
	}
	if got := IntervalForRate(0); got != time.Minute {
		t.Fatalf("expected 1m fallback, got %s", got)
	}
}
