package testutil

import (
	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/providers"
	"github.com/preston-bernstein/live-scores-service/internal/repository"
	"github.com/preston-bernstein/live-scores-service/internal/store"
)

// NewRepositoryWithMatches builds a repository whose snapshot already holds list.
// Fetches go to provider, or return list when provider is nil.
func NewRepositoryWithMatches(list []matches.Match, provider providers.MatchProvider) *repository.Repository {
	ms := store.NewMemoryStore()
	if len(list) > 0 {
		ms.SetMatches(list)
	}
	if provider == nil {
		provider = GoodProvider{Matches: list}
	}
	return repository.New(provider, ms, repository.Propagate, nil)
}
