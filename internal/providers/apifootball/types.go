package apifootball

// fixturesResponse is the api-football envelope for /fixtures.
// Errors is an empty array on success and an object keyed by field on failure.
type fixturesResponse struct {
	Get        string            `json:"get"`
	Parameters map[string]string `json:"parameters"`
	Errors     any               `json:"errors"`
	Results    int               `json:"results"`
	Paging     paging            `json:"paging"`
	Response   []FixtureRecord   `json:"response"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// FixtureRecord is one entry of the fixtures response.
type FixtureRecord struct {
	Fixture Fixture `json:"fixture"`
	League  League  `json:"league"`
	Teams   Teams   `json:"teams"`
	Goals   Goals   `json:"goals"`
	Score   Score   `json:"score"`
}

// Fixture identifies the match and its kickoff.
type Fixture struct {
	ID        int64         `json:"id"`
	Referee   *string       `json:"referee"`
	Timezone  string        `json:"timezone"`
	Date      string        `json:"date"`
	Timestamp int64         `json:"timestamp"`
	Status    FixtureStatus `json:"status"`
}

// FixtureStatus carries the short code the mapper reads, e.g. "1H" or "FT".
type FixtureStatus struct {
	Long    string `json:"long"`
	Short   string `json:"short"`
	Elapsed *int   `json:"elapsed"`
}

// League is the competition a fixture belongs to.
type League struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Flag    string `json:"flag"`
	Season  int    `json:"season"`
	Round   string `json:"round"`
}

// Teams pairs the home and away sides.
type Teams struct {
	Home Team `json:"home"`
	Away Team `json:"away"`
}

// Team is one side of a fixture.
type Team struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Logo   string `json:"logo"`
	Winner *bool  `json:"winner"`
}

// Goals are null until the match starts.
type Goals struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// Score holds per-period goal tallies.
type Score struct {
	Halftime  Goals `json:"halftime"`
	Fulltime  Goals `json:"fulltime"`
	Extratime Goals `json:"extratime"`
	Penalty   Goals `json:"penalty"`
}
