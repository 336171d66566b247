package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// StubProvider is a test double for providers.MatchProvider.
type StubProvider struct {
	Matches []matches.Match
	ByDate  map[string][]matches.Match
	Err     error
	Calls   atomic.Int32
	Notify  chan struct{}

	mu        sync.Mutex
	lastDates []string
}

// FetchLiveMatches returns configured matches and error while tracking calls.
func (s *StubProvider) FetchLiveMatches(ctx context.Context) ([]matches.Match, error) {
	_ = ctx
	s.notify()
	s.Calls.Add(1)
	return s.Matches, s.Err
}

// FetchMatchesByDate returns matches from ByDate, falling back to Matches.
func (s *StubProvider) FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	_ = ctx
	s.notify()
	s.Calls.Add(1)
	s.mu.Lock()
	s.lastDates = append(s.lastDates, date)
	s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if found, ok := s.ByDate[date]; ok {
		return found, nil
	}
	return s.Matches, nil
}

// Dates returns every date requested through FetchMatchesByDate.
func (s *StubProvider) Dates() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lastDates...)
}

func (s *StubProvider) notify() {
	if s.Notify == nil {
		return
	}
	select {
	case <-s.Notify:
	default:
		close(s.Notify)
	}
}
