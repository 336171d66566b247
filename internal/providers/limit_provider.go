package providers

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

const rateLimitedName = "rate-limited"

// rateLimitedProvider wraps a MatchProvider and spaces calls to stay under the upstream quota.
type rateLimitedProvider struct {
	next     MatchProvider
	interval time.Duration
	limiter  *rate.Limiter
	logger   *slog.Logger
}

// NewRateLimitedProvider returns a MatchProvider that allows one call per interval.
// The first call goes through immediately; later calls block until a token is available.
func NewRateLimitedProvider(next MatchProvider, interval time.Duration, logger *slog.Logger) MatchProvider {
	if interval <= 0 {
		interval = time.Minute
	}
	return &rateLimitedProvider{
		next:     next,
		interval: interval,
		limiter:  rate.NewLimiter(rate.Every(interval), 1),
		logger:   logger,
	}
}

// IntervalForRate converts a requests-per-minute quota into the spacing between calls.
func IntervalForRate(perMinute int) time.Duration {
	if perMinute <= 0 {
		return time.Minute
	}
	return time.Minute / time.Duration(perMinute)
}

func (p *rateLimitedProvider) FetchLiveMatches(ctx context.Context) ([]matches.Match, error) {
	if err := p.wait(ctx, "live"); err != nil {
		return nil, err
	}
	return p.next.FetchLiveMatches(ctx)
}

func (p *rateLimitedProvider) FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	if err := p.wait(ctx, date); err != nil {
		return nil, err
	}
	return p.next.FetchMatchesByDate(ctx, date)
}

func (p *rateLimitedProvider) wait(ctx context.Context, target string) error {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "provider unavailable")
		return ErrProviderUnavailable
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, rateLimitedName, "rate-limited fetch canceled", "target", target)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return err
	}
	logWithProvider(ctx, p.logger, slog.LevelDebug, rateLimitedName, "rate-limited provider fetch", "target", target)
	return nil
}
