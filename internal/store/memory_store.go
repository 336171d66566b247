package store

import (
	"sync"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// MemoryStore keeps a thread-safe snapshot of matches in memory, in upstream order.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	matches map[string]matches.Match
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		matches: make(map[string]matches.Match),
	}
}

// ListMatches returns a copy of the current snapshot in the order it was stored.
func (s *MemoryStore) ListMatches() []matches.Match {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]matches.Match, 0, len(s.order))
	for _, id := range s.order {
		result = append(result, s.matches[id])
	}
	return result
}

// GetMatch retrieves a match by ID.
func (s *MemoryStore) GetMatch(id string) (matches.Match, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	m, ok := s.matches[id]
	return m, ok
}

// SetMatches replaces the existing snapshot. Later duplicates of an ID win but keep the first position.
func (s *MemoryStore) SetMatches(list []matches.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order = make([]string, 0, len(list))
	s.matches = make(map[string]matches.Match, len(list))
	for _, m := range list {
		if _, seen := s.matches[m.ID]; !seen {
			s.order = append(s.order, m.ID)
		}
		s.matches[m.ID] = m
	}
}

// UpdateMatch applies fn to the stored match with id and stores the result.
// It reports false when no match with that id exists.
func (s *MemoryStore) UpdateMatch(id string, fn func(matches.Match) matches.Match) (matches.Match, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.matches[id]
	if !ok {
		return matches.Match{}, false
	}
	next := fn(current)
	next.ID = id
	s.matches[id] = next
	return next, true
}
