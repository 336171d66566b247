package providers

import (
	"context"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// MatchProvider defines how upstream fixtures are fetched and normalized.
type MatchProvider interface {
	// FetchLiveMatches returns the matches currently in play, in upstream order.
	FetchLiveMatches(ctx context.Context) ([]matches.Match, error)
	// FetchMatchesByDate returns every match on a YYYY-MM-DD date.
	// Providers interpret an empty or malformed date as today in their configured timezone.
	FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error)
}

