package apifootball

import (
	"strconv"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
)

// MapFixture converts one api-football record into a domain match.
func MapFixture(rec FixtureRecord) matches.Match {
	return matches.Match{
		ID:         strconv.FormatInt(rec.Fixture.ID, 10),
		HomeTeam:   rec.Teams.Home.Name,
		AwayTeam:   rec.Teams.Away.Name,
		HomeScore:  rec.Goals.Home,
		AwayScore:  rec.Goals.Away,
		Status:     MapStatus(rec.Fixture.Status.Short),
		StatusLong: rec.Fixture.Status.Long,
		Elapsed:    rec.Fixture.Status.Elapsed,
		StartTime:  rec.Fixture.Timestamp * 1000,
		EndTime:    nil,
		League: matches.League{
			ID:      rec.League.ID,
			Name:    rec.League.Name,
			Country: rec.League.Country,
			Season:  rec.League.Season,
			Round:   rec.League.Round,
		},
	}
}

// MapFixtures maps records preserving upstream order.
func MapFixtures(recs []FixtureRecord) []matches.Match {
	out := make([]matches.Match, 0, len(recs))
	for _, rec := range recs {
		out = append(out, MapFixture(rec))
	}
	return out
}

// MapStatus maps an upstream short status code. Unrecognized codes are SCHEDULED.
func MapStatus(short string) matches.Status {
	switch short {
	case statusFirstHalf, statusSecondHalf, statusHalfTime:
		return matches.StatusLive
	case statusFullTime:
		return matches.StatusFinished
	case statusCancelled:
		return matches.StatusCancelled
	default:
		return matches.StatusScheduled
	}
}
