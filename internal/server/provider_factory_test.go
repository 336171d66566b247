package server

import (
	"testing"

	"github.com/preston-bernstein/live-scores-service/internal/config"
	"github.com/preston-bernstein/live-scores-service/internal/providers/fixture"
	"github.com/preston-bernstein/live-scores-service/internal/state"
)

func loadIntent() state.Intent { return state.LoadMatches() }

func TestProviderFactoryBuildsFixture(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	prov := factory.build(config.Config{Provider: config.ProviderFixture})
	if prov == nil {
		t.Fatalf("expected provider")
	}
	if _, ok := prov.(*fixture.Provider); ok {
		t.Fatalf("expected fixture to be wrapped with retries")
	}
}

func TestProviderFactoryBuildsAPIFootball(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	prov := factory.build(config.Config{
		Provider:    config.ProviderAPIFootball,
		APIFootball: config.APIFootballConfig{BaseURL: "http://example.com", APIKey: "k", RatePerMinute: 10},
	})
	if prov == nil {
		t.Fatalf("expected provider")
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName("APIFootball", nil); got != "apifootball" {
		t.Fatalf("expected lowercased name, got %s", got)
	}
	if got := normalizeProviderName("", fixture.New()); got != "*fixture.provider" {
		t.Fatalf("expected type-derived name, got %s", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected default name, got %s", got)
	}
}
