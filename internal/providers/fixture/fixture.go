package fixture

import (
	"context"
	"time"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/providers/apifootball"
	"github.com/preston-bernstein/live-scores-service/internal/timeutil"
)

// Provider returns a static set of fixtures useful for local testing and bootstrapping.
// Records go through the api-football mapper so offline data has the same shape as live data.
type Provider struct {
	now func() time.Time
}

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

// FetchLiveMatches returns three in-play matches kicked off relative to now.
func (p *Provider) FetchLiveMatches(ctx context.Context) ([]matches.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	now := p.now().UTC().Truncate(time.Minute)
	return apifootball.MapFixtures(liveRecords(now)), nil
}

// FetchMatchesByDate returns a full day of fixtures covering every status.
func (p *Provider) FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	day, _ := timeutil.ParseDate(timeutil.NormalizeDate(date, p.now(), time.UTC))
	recs := []apifootball.FixtureRecord{
		record(2001, day.Add(12*time.Hour), "FT", "Match Finished", nil, "Arsenal", "Chelsea", goals(3, 1), premierLeague),
		record(2002, day.Add(15*time.Hour), "CANC", "Match Cancelled", nil, "Valencia", "Sevilla", noGoals(), laLiga),
		record(2003, day.Add(18*time.Hour), "NS", "Not Started", nil, "Juventus", "AC Milan", noGoals(), serieA),
		record(2004, day.Add(20*time.Hour), "NS", "Not Started", nil, "Borussia Dortmund", "RB Leipzig", noGoals(), bundesliga),
	}
	return apifootball.MapFixtures(recs), nil
}

var (
	premierLeague = apifootball.League{ID: 39, Name: "Premier League", Country: "England", Season: 2024, Round: "Regular Season - 10"}
	laLiga        = apifootball.League{ID: 140, Name: "La Liga", Country: "Spain", Season: 2024, Round: "Regular Season - 10"}
	serieA        = apifootball.League{ID: 135, Name: "Serie A", Country: "Italy", Season: 2024, Round: "Regular Season - 10"}
	bundesliga    = apifootball.League{ID: 78, Name: "Bundesliga", Country: "Germany", Season: 2024, Round: "Regular Season - 8"}
)

func liveRecords(now time.Time) []apifootball.FixtureRecord {
	return []apifootball.FixtureRecord{
		record(1001, now.Add(-30*time.Minute), "1H", "First Half", elapsed(30), "Liverpool", "Manchester City", goals(1, 0), premierLeague),
		record(1002, now.Add(-50*time.Minute), "HT", "Halftime", elapsed(45), "Real Madrid", "Barcelona", goals(1, 1), laLiga),
		record(1003, now.Add(-80*time.Minute), "2H", "Second Half", elapsed(65), "Inter", "Napoli", goals(0, 2), serieA),
	}
}

func record(id int64, kickoff time.Time, short, long string, el *int, home, away string, g apifootball.Goals, league apifootball.League) apifootball.FixtureRecord {
	return apifootball.FixtureRecord{
		Fixture: apifootball.Fixture{
			ID:        id,
			Timestamp: kickoff.Unix(),
			Status:    apifootball.FixtureStatus{Short: short, Long: long, Elapsed: el},
		},
		League: league,
		Teams: apifootball.Teams{
			Home: apifootball.Team{Name: home},
			Away: apifootball.Team{Name: away},
		},
		Goals: g,
	}
}

func goals(home, away int) apifootball.Goals {
	return apifootball.Goals{Home: matches.Goals(home), Away: matches.Goals(away)}
}

func noGoals() apifootball.Goals { return apifootball.Goals{} }

func elapsed(v int) *int { return &v }
