package matches

import (
	"context"

	domain "github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// Source is the repository capability the use case depends on.
type Source interface {
	Matches(ctx context.Context) ([]domain.Match, error)
}

// GetMatches returns the current list of live matches.
type GetMatches struct {
	source Source
}

// NewGetMatches constructs the use case over a Source.
func NewGetMatches(source Source) *GetMatches {
	return &GetMatches{source: source}
}

// Invoke delegates to the repository.
func (u *GetMatches) Invoke(ctx context.Context) ([]domain.Match, error) {
	return u.source.Matches(ctx)
}
