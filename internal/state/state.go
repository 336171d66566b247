package state

import "github.com/preston-bernstein/live-scores-service/internal/domain/matches"

// State is one immutable snapshot of the screen. It is replaced whole on every transition.
//
// Derived phases: idle (not loading, no error), loading (IsLoading), error (Error set),
// loaded (matches present, not loading, no error).
type State struct {
	Matches   []matches.Match `json:"matches"`
	IsLoading bool            `json:"isLoading"`
	Error     string          `json:"error,omitempty"`
}

// Initial is the snapshot before any intent was handled.
func Initial() State {
	return State{Matches: []matches.Match{}}
}

// HasError reports whether the last load failed.
func (s State) HasError() bool {
	return s.Error != ""
}

// Equal compares snapshots field by field, matches included.
func (s State) Equal(other State) bool {
	if s.IsLoading != other.IsLoading || s.Error != other.Error || len(s.Matches) != len(other.Matches) {
		return false
	}
	for i := range s.Matches {
		if !matchEqual(s.Matches[i], other.Matches[i]) {
			return false
		}
	}
	return true
}

func matchEqual(a, b matches.Match) bool {
	return a.ID == b.ID &&
		a.HomeTeam == b.HomeTeam &&
		a.AwayTeam == b.AwayTeam &&
		intPtrEqual(a.HomeScore, b.HomeScore) &&
		intPtrEqual(a.AwayScore, b.AwayScore) &&
		a.Status == b.Status &&
		a.StatusLong == b.StatusLong &&
		intPtrEqual(a.Elapsed, b.Elapsed) &&
		a.StartTime == b.StartTime &&
		int64PtrEqual(a.EndTime, b.EndTime) &&
		a.League == b.League
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
