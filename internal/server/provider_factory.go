package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/live-scores-service/internal/config"
	"github.com/preston-bernstein/live-scores-service/internal/metrics"
	"github.com/preston-bernstein/live-scores-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (rate limit + retry).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.MatchProvider {
	base := selectProvider(cfg, f.logger)
	if cfg.Provider == config.ProviderAPIFootball {
		// The limiter sits inside the retry loop so retries also count against the quota.
		base = providers.NewRateLimitedProvider(base, providers.IntervalForRate(cfg.APIFootball.RatePerMinute), f.logger)
	}
	return providers.NewRetryingProvider(base, f.logger, f.metrics, normalizeProviderName(cfg.Provider, base), 0, 0)
}

// normalizeProviderName is the provider label used in retry logs and metrics.
func normalizeProviderName(raw string, provider providers.MatchProvider) string {
	if raw != "" {
		return strings.ToLower(raw)
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
