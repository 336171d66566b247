package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/preston-bernstein/live-scores-service/internal/app/matches"
	domain "github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/live-scores-service/internal/state"
	"github.com/preston-bernstein/live-scores-service/internal/testutil"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	repo := testutil.NewRepositoryWithMatches([]domain.Match{testutil.SampleMatch("m1")}, nil)
	c := state.New(matches.NewGetMatches(repo), state.Options{})
	t.Cleanup(c.Close)
	return NewRouter(handlers.NewHandler(c, repo, nil, nil))
}

func TestRouterRoutesKnownPaths(t *testing.T) {
	router := newRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{method: http.MethodGet, path: "/health", want: http.StatusOK},
		{method: http.MethodGet, path: "/ready", want: http.StatusOK},
		{method: http.MethodGet, path: "/matches", want: http.StatusOK},
		{method: http.MethodGet, path: "/matches/m1", want: http.StatusOK},
		{method: http.MethodGet, path: "/matches/missing", want: http.StatusNotFound},
		{method: http.MethodGet, path: "/matches/date/2024-01-01", want: http.StatusOK},
		{method: http.MethodGet, path: "/matches/date/nope", want: http.StatusBadRequest},
		{method: http.MethodPost, path: "/matches/refresh", want: http.StatusAccepted},
		{method: http.MethodPost, path: "/intents", body: `{"type":"LoadMatches"}`, want: http.StatusAccepted},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code != tc.want {
			t.Fatalf("%s %s expected status %d, got %d", tc.method, tc.path, tc.want, rr.Code)
		}
	}
}

func TestRouterRejectsWrongMethod(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/matches/refresh", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	// GET /matches/refresh falls through to the id route.
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for GET refresh, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/matches", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for DELETE /matches, got %d", rr.Code)
	}
}

func TestRouterUnknownRouteReturns404(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown route, got %d", rr.Code)
	}
}
