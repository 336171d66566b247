package matches

// Status mirrors the lifecycle states a match can be in.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusLive      Status = "LIVE"
	StatusFinished  Status = "FINISHED"
	StatusCancelled Status = "CANCELLED"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusLive, StatusFinished, StatusCancelled:
		return true
	default:
		return false
	}
}

// League describes the competition a match belongs to.
type League struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Season  int    `json:"season"`
	Round   string `json:"round,omitempty"`
}

// Match is the canonical match shape exposed by the service.
// Scores are nil until the upstream reports them. Times are epoch milliseconds.
type Match struct {
	ID         string `json:"id"`
	HomeTeam   string `json:"homeTeam"`
	AwayTeam   string `json:"awayTeam"`
	HomeScore  *int   `json:"homeScore"`
	AwayScore  *int   `json:"awayScore"`
	Status     Status `json:"status"`
	StatusLong string `json:"statusLong,omitempty"`
	Elapsed    *int   `json:"elapsed,omitempty"`
	StartTime  int64  `json:"startTime"`
	EndTime    *int64 `json:"endTime"`
	League     League `json:"league"`
}

// WithScore returns a copy of m carrying the given score.
func (m Match) WithScore(home, away int) Match {
	m.HomeScore = Goals(home)
	m.AwayScore = Goals(away)
	return m
}

// WithStatus returns a copy of m carrying the given status.
func (m Match) WithStatus(status Status) Match {
	m.Status = status
	return m
}

// Goals returns a pointer to v for populating nullable score fields.
func Goals(v int) *int {
	return &v
}

// DateResponse is the payload returned by /matches/date/{date}.
type DateResponse struct {
	Date    string  `json:"date"`
	Matches []Match `json:"matches"`
}

// NewDateResponse builds a DateResponse payload.
func NewDateResponse(date string, matches []Match) DateResponse {
	if matches == nil {
		matches = []Match{}
	}
	return DateResponse{
		Date:    date,
		Matches: matches,
	}
}
