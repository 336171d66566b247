package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/state"
)

// Kind is which of the four screens is shown.
type Kind string

const (
	KindError   Kind = "error"
	KindLoading Kind = "loading"
	KindEmpty   Kind = "empty"
	KindList    Kind = "list"
)

const (
	loadingMessage = "Loading matches..."
	emptyMessage   = "No matches right now"
)

// Screen is the rendered form of a State.
type Screen struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message,omitempty"`
	// Retry names the intent the retry affordance sends; set only on the error screen.
	Retry string `json:"retry,omitempty"`
	Rows  []Row  `json:"matches,omitempty"`
}

// Row is one match line of the list screen.
type Row struct {
	ID      string `json:"id"`
	Home    string `json:"home"`
	Away    string `json:"away"`
	Score   string `json:"score"`
	Status  string `json:"status"`
	Minute  string `json:"minute,omitempty"`
	Kickoff string `json:"kickoff"`
	League  string `json:"league,omitempty"`
}

// Render maps a snapshot to a screen. Priority is error, then loading, then empty, then list.
func Render(s state.State) Screen {
	switch {
	case s.HasError():
		return Screen{Kind: KindError, Message: s.Error, Retry: string(state.IntentLoadMatches)}
	case s.IsLoading:
		return Screen{Kind: KindLoading, Message: loadingMessage}
	case len(s.Matches) == 0:
		return Screen{Kind: KindEmpty, Message: emptyMessage}
	}
	rows := make([]Row, 0, len(s.Matches))
	for _, m := range s.Matches {
		rows = append(rows, toRow(m))
	}
	return Screen{Kind: KindList, Rows: rows}
}

// FilterByTeam keeps matches where either team fuzzily matches query, ignoring case and accents.
// An empty query keeps everything.
func FilterByTeam(list []matches.Match, query string) []matches.Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return list
	}
	out := make([]matches.Match, 0, len(list))
	for _, m := range list {
		if fuzzy.MatchNormalizedFold(query, m.HomeTeam) || fuzzy.MatchNormalizedFold(query, m.AwayTeam) {
			out = append(out, m)
		}
	}
	return out
}

// RenderText draws a screen as plain text, one match per line.
func RenderText(sc Screen) string {
	var b strings.Builder
	switch sc.Kind {
	case KindError:
		fmt.Fprintf(&b, "Error: %s\n", sc.Message)
		fmt.Fprintf(&b, "Retry: POST /intents {\"type\":%q}\n", sc.Retry)
	case KindLoading, KindEmpty:
		b.WriteString(sc.Message)
		b.WriteByte('\n')
	case KindList:
		for _, r := range sc.Rows {
			fmt.Fprintf(&b, "[%s] %s %s %s", r.Status, r.Home, r.Score, r.Away)
			if r.Minute != "" {
				fmt.Fprintf(&b, " (%s)", r.Minute)
			}
			if r.League != "" {
				fmt.Fprintf(&b, " | %s", r.League)
			}
			fmt.Fprintf(&b, " | %s\n", r.Kickoff)
		}
	}
	return b.String()
}

func toRow(m matches.Match) Row {
	row := Row{
		ID:      m.ID,
		Home:    m.HomeTeam,
		Away:    m.AwayTeam,
		Score:   score(m),
		Status:  string(m.Status),
		Kickoff: time.UnixMilli(m.StartTime).UTC().Format(time.RFC3339),
		League:  m.League.Name,
	}
	if m.Status == matches.StatusLive && m.Elapsed != nil {
		row.Minute = strconv.Itoa(*m.Elapsed) + "'"
	}
	return row
}

func score(m matches.Match) string {
	if m.HomeScore == nil || m.AwayScore == nil {
		return "vs"
	}
	return fmt.Sprintf("%d - %d", *m.HomeScore, *m.AwayScore)
}
