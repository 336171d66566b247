package server

import (
	"log/slog"

	"github.com/preston-bernstein/live-scores-service/internal/config"
	"github.com/preston-bernstein/live-scores-service/internal/providers"
	"github.com/preston-bernstein/live-scores-service/internal/providers/apifootball"
	"github.com/preston-bernstein/live-scores-service/internal/providers/fixture"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.MatchProvider {
	switch cfg.Provider {
	case config.ProviderFixture, "":
		return fixture.New()
	case config.ProviderAPIFootball:
		return apifootball.NewClient(apifootball.Config{
			BaseURL:  cfg.APIFootball.BaseURL,
			APIKey:   cfg.APIFootball.APIKey,
			APIHost:  cfg.APIFootball.APIHost,
			Timezone: cfg.APIFootball.Timezone,
			Timeout:  cfg.APIFootball.Timeout,
		})
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}
