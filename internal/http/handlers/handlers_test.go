package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/live-scores-service/internal/app/matches"
	domain "github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/poller"
	"github.com/preston-bernstein/live-scores-service/internal/repository"
	"github.com/preston-bernstein/live-scores-service/internal/state"
	"github.com/preston-bernstein/live-scores-service/internal/testutil"
	"github.com/preston-bernstein/live-scores-service/internal/view"
)

type stubContainer struct {
	snapshot    state.State
	dispatchErr error
	runErr      error
	dispatched  []state.Intent
	ran         []state.Intent
}

func (s *stubContainer) State() state.State { return s.snapshot }

func (s *stubContainer) Dispatch(intent state.Intent) error {
	s.dispatched = append(s.dispatched, intent)
	return s.dispatchErr
}

func (s *stubContainer) Run(ctx context.Context, intent state.Intent) (state.State, error) {
	_ = ctx
	s.ran = append(s.ran, intent)
	return s.snapshot, s.runErr
}

type stubReader struct {
	match  domain.Match
	list   []domain.Match
	err    error
	gotIDs []string
	dates  []string
}

func (s *stubReader) MatchByID(ctx context.Context, id string) (domain.Match, error) {
	s.gotIDs = append(s.gotIDs, id)
	return s.match, s.err
}

func (s *stubReader) MatchesByDate(ctx context.Context, date string) ([]domain.Match, error) {
	s.dates = append(s.dates, date)
	return s.list, s.err
}

func newLiveHandler(t *testing.T, list []domain.Match) (*Handler, *state.Container) {
	t.Helper()
	repo := testutil.NewRepositoryWithMatches(list, nil)
	c := state.New(matches.NewGetMatches(repo), state.Options{})
	t.Cleanup(c.Close)
	return NewHandler(c, repo, nil, nil), c
}

func TestHealth(t *testing.T) {
	h := NewHandler(&stubContainer{}, &stubReader{}, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Health), http.MethodGet, "/health", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["status"] != "ok" {
		t.Fatalf("expected status ok, got %s", resp["status"])
	}
}

func TestHealthShuttingDownReturnsServiceUnavailable(t *testing.T) {
	h := NewHandler(&stubContainer{}, &stubReader{}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	ctx, cancel := context.WithCancel(req.Context())
	cancel()
	rr := testutil.ServeRequest(http.HandlerFunc(h.Health), req.WithContext(ctx))

	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "shutting down" {
		t.Fatalf("unexpected error %q", resp["error"])
	}
}

func TestReady(t *testing.T) {
	h := NewHandler(&stubContainer{}, &stubReader{}, nil, nil)
	rr := testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	h.statusFn = func() poller.Status { return poller.Status{LastSuccess: time.Now()} }
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	h.statusFn = func() poller.Status { return poller.Status{ConsecutiveFailures: 1, LastError: "upstream down"} }
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
	var resp map[string]string
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "upstream down" {
		t.Fatalf("expected last error surfaced, got %q", resp["error"])
	}

	h.statusFn = func() poller.Status { return poller.Status{} }
	rr = testutil.Serve(http.HandlerFunc(h.Ready), http.MethodGet, "/ready", nil)
	testutil.DecodeJSON(t, rr, &resp)
	if resp["error"] != "not ready" {
		t.Fatalf("expected default not ready message, got %q", resp["error"])
	}
}

func TestMatchesRendersScreenByPriority(t *testing.T) {
	cases := []struct {
		name     string
		snapshot state.State
		want     view.Kind
	}{
		{name: "error wins", snapshot: state.State{Error: "boom", IsLoading: true, Matches: []domain.Match{testutil.SampleMatch("1")}}, want: view.KindError},
		{name: "loading", snapshot: state.State{IsLoading: true, Matches: []domain.Match{testutil.SampleMatch("1")}}, want: view.KindLoading},
		{name: "empty", snapshot: state.State{}, want: view.KindEmpty},
		{name: "list", snapshot: state.State{Matches: []domain.Match{testutil.SampleMatch("1")}}, want: view.KindList},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(&stubContainer{snapshot: tc.snapshot}, &stubReader{}, nil, nil)
			rr := testutil.Serve(http.HandlerFunc(h.Matches), http.MethodGet, "/matches", nil)
			testutil.AssertStatus(t, rr, http.StatusOK)

			var screen view.Screen
			testutil.DecodeJSON(t, rr, &screen)
			if screen.Kind != tc.want {
				t.Fatalf("expected %s screen, got %s", tc.want, screen.Kind)
			}
		})
	}
}

func TestMatchesFiltersByTeamAndRendersText(t *testing.T) {
	liverpool := testutil.SampleLiveMatch("1", 2, 1)
	liverpool.HomeTeam = "Liverpool"
	arsenal := testutil.SampleMatch("2")
	arsenal.HomeTeam = "Arsenal"
	arsenal.AwayTeam = "Chelsea"
	h := NewHandler(&stubContainer{snapshot: state.State{Matches: []domain.Match{liverpool, arsenal}}}, &stubReader{}, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Matches), http.MethodGet, "/matches?team=liv", nil)
	var screen view.Screen
	testutil.DecodeJSON(t, rr, &screen)
	if len(screen.Rows) != 1 || screen.Rows[0].ID != "1" {
		t.Fatalf("expected only liverpool row, got %+v", screen.Rows)
	}

	rr = testutil.Serve(http.HandlerFunc(h.Matches), http.MethodGet, "/matches?format=text", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	testutil.AssertContentType(t, rr, "text/plain")
	body := rr.Body.String()
	if !strings.Contains(body, "Liverpool 2 - 1") || !strings.Contains(body, "Arsenal vs Chelsea") {
		t.Fatalf("unexpected text body:\n%s", body)
	}
}

func TestMatchByIDDispatchesClickAndReturnsMatch(t *testing.T) {
	container := &stubContainer{}
	reader := &stubReader{match: testutil.SampleMatch("42")}
	h := NewHandler(container, reader, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/matches/42", nil)
	req.SetPathValue("id", "42")
	rr := testutil.ServeRequest(http.HandlerFunc(h.MatchByID), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	var got domain.Match
	testutil.DecodeJSON(t, rr, &got)
	if got.ID != "42" {
		t.Fatalf("expected match 42, got %s", got.ID)
	}
	if len(container.ran) != 1 || container.ran[0] != state.MatchClicked("42") {
		t.Fatalf("expected MatchClicked(42) run, got %v", container.ran)
	}
}

func TestMatchByIDErrors(t *testing.T) {
	cases := []struct {
		name      string
		id        string
		container *stubContainer
		reader    *stubReader
		want      int
	}{
		{name: "blank id", id: " ", container: &stubContainer{}, reader: &stubReader{}, want: http.StatusBadRequest},
		{name: "id with space", id: "a b", container: &stubContainer{}, reader: &stubReader{}, want: http.StatusBadRequest},
		{name: "not found", id: "x", container: &stubContainer{}, reader: &stubReader{err: repository.ErrMatchNotFound}, want: http.StatusNotFound},
		{name: "lookup failure", id: "x", container: &stubContainer{}, reader: &stubReader{err: errors.New("boom")}, want: http.StatusInternalServerError},
		{name: "closed container", id: "x", container: &stubContainer{runErr: state.ErrClosed}, reader: &stubReader{}, want: http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(tc.container, tc.reader, nil, nil)
			req := httptest.NewRequest(http.MethodGet, "/matches/x", nil)
			req.SetPathValue("id", tc.id)
			rr := testutil.ServeRequest(http.HandlerFunc(h.MatchByID), req)
			testutil.AssertStatus(t, rr, tc.want)
		})
	}
}

func TestMatchByIDWithLiveContainerLeavesStateUnchanged(t *testing.T) {
	h, c := newLiveHandler(t, []domain.Match{testutil.SampleMatch("7")})
	if _, err := c.Run(context.Background(), state.LoadMatches()); err != nil {
		t.Fatalf("load: %v", err)
	}
	before := c.State()

	req := httptest.NewRequest(http.MethodGet, "/matches/7", nil)
	req.SetPathValue("id", "7")
	rr := testutil.ServeRequest(http.HandlerFunc(h.MatchByID), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if !c.State().Equal(before) {
		t.Fatalf("expected click to leave state unchanged")
	}
}

func TestRefreshDispatchesAsync(t *testing.T) {
	container := &stubContainer{}
	h := NewHandler(container, &stubReader{}, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Refresh), http.MethodPost, "/matches/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusAccepted)
	if len(container.dispatched) != 1 || container.dispatched[0].Type != state.IntentRefreshMatches {
		t.Fatalf("expected RefreshMatches dispatched, got %v", container.dispatched)
	}

	container.dispatchErr = state.ErrClosed
	rr = testutil.Serve(http.HandlerFunc(h.Refresh), http.MethodPost, "/matches/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestRefreshWaitReturnsRenderedState(t *testing.T) {
	h, _ := newLiveHandler(t, []domain.Match{testutil.SampleMatch("1"), testutil.SampleMatch("2")})

	rr := testutil.Serve(http.HandlerFunc(h.Refresh), http.MethodPost, "/matches/refresh?wait=true", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var screen view.Screen
	testutil.DecodeJSON(t, rr, &screen)
	if screen.Kind != view.KindList || len(screen.Rows) != 2 {
		t.Fatalf("expected list of two rows, got %+v", screen)
	}
}

func TestRefreshWaitRendersLoadFailureAsErrorScreen(t *testing.T) {
	repo := testutil.NewRepositoryWithMatches(nil, testutil.ErrProvider{Err: errors.New("network down")})
	c := state.New(matches.NewGetMatches(repo), state.Options{})
	t.Cleanup(c.Close)
	h := NewHandler(c, repo, nil, nil)

	rr := testutil.Serve(http.HandlerFunc(h.Refresh), http.MethodPost, "/matches/refresh?wait=1", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var screen view.Screen
	testutil.DecodeJSON(t, rr, &screen)
	if screen.Kind != view.KindError || !strings.Contains(screen.Message, "network down") {
		t.Fatalf("expected error screen, got %+v", screen)
	}
	if screen.Retry != string(state.IntentLoadMatches) {
		t.Fatalf("expected retry to send LoadMatches, got %q", screen.Retry)
	}
}

func TestMatchesByDate(t *testing.T) {
	reader := &stubReader{list: []domain.Match{testutil.SampleMatch("d1")}}
	h := NewHandler(&stubContainer{}, reader, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/matches/date/2024-03-10", nil)
	req.SetPathValue("date", "2024-03-10")
	rr := testutil.ServeRequest(http.HandlerFunc(h.MatchesByDate), req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp domain.DateResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Date != "2024-03-10" || len(resp.Matches) != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestMatchesByDateToday(t *testing.T) {
	reader := &stubReader{}
	h := NewHandler(&stubContainer{}, reader, nil, nil)
	h.now = testutil.NowAt(time.Date(2024, 1, 2, 2, 0, 0, 0, time.UTC))

	req := httptest.NewRequest(http.MethodGet, "/matches/date/today?tz=America/New_York", nil)
	req.SetPathValue("date", "today")
	rr := testutil.ServeRequest(http.HandlerFunc(h.MatchesByDate), req)
	testutil.AssertStatus(t, rr, http.StatusOK)

	var resp domain.DateResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Date != "2024-01-01" {
		t.Fatalf("expected date resolved in New York, got %s", resp.Date)
	}
	if resp.Matches == nil {
		t.Fatalf("expected empty list, not null")
	}

	h.WithLocation(nil)
	req = httptest.NewRequest(http.MethodGet, "/matches/date/today", nil)
	req.SetPathValue("date", "today")
	rr = testutil.ServeRequest(http.HandlerFunc(h.MatchesByDate), req)
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Date != "2024-01-02" {
		t.Fatalf("expected UTC date, got %s", resp.Date)
	}
}

func TestMatchesByDateErrors(t *testing.T) {
	h := NewHandler(&stubContainer{}, &stubReader{err: errors.New("boom")}, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/matches/date/bad", nil)
	req.SetPathValue("date", "bad")
	rr := testutil.ServeRequest(http.HandlerFunc(h.MatchesByDate), req)
	testutil.AssertStatus(t, rr, http.StatusBadRequest)

	req = httptest.NewRequest(http.MethodGet, "/matches/date/2024-01-01", nil)
	req.SetPathValue("date", "2024-01-01")
	rr = testutil.ServeRequest(http.HandlerFunc(h.MatchesByDate), req)
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}
