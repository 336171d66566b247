package testutil

import (
	"time"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// SampleMatch returns a minimal scheduled match with the provided id.
func SampleMatch(id string) matches.Match {
	return matches.Match{
		ID:        id,
		HomeTeam:  "Home FC",
		AwayTeam:  "Away United",
		Status:    matches.StatusScheduled,
		StartTime: time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC).UnixMilli(),
		League:    matches.League{ID: 39, Name: "Premier League", Country: "England", Season: 2023},
	}
}

// SampleLiveMatch returns a live match with a known score.
func SampleLiveMatch(id string, home, away int) matches.Match {
	m := SampleMatch(id).WithScore(home, away).WithStatus(matches.StatusLive)
	elapsed := 55
	m.Elapsed = &elapsed
	return m
}

// SampleDateResponse builds a DateResponse with a single sample match.
func SampleDateResponse(date string, id string) matches.DateResponse {
	return matches.NewDateResponse(date, []matches.Match{SampleMatch(id)})
}
