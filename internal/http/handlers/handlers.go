package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/poller"
	"github.com/preston-bernstein/live-scores-service/internal/repository"
	"github.com/preston-bernstein/live-scores-service/internal/state"
	"github.com/preston-bernstein/live-scores-service/internal/timeutil"
	"github.com/preston-bernstein/live-scores-service/internal/view"
)

type nowFunc func() time.Time

// StateContainer is the part of the state container the HTTP surface drives.
type StateContainer interface {
	State() state.State
	Dispatch(intent state.Intent) error
	Run(ctx context.Context, intent state.Intent) (state.State, error)
}

// MatchReader serves lookups outside the live snapshot.
type MatchReader interface {
	MatchByID(ctx context.Context, id string) (matches.Match, error)
	MatchesByDate(ctx context.Context, date string) ([]matches.Match, error)
}

// Handler renders container state and turns requests into intents.
type Handler struct {
	container StateContainer
	reader    MatchReader
	logger    *slog.Logger
	now       nowFunc
	loc       *time.Location
	statusFn  func() poller.Status
	validate  *validator.Validate
}

// NewHandler constructs a Handler with defaults.
func NewHandler(container StateContainer, reader MatchReader, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		container: container,
		reader:    reader,
		logger:    logger,
		now:       time.Now,
		loc:       time.UTC,
		statusFn:  statusFn,
		validate:  validator.New(),
	}
}

// WithLocation sets the timezone "today" resolves in when no tz query is given.
func (h *Handler) WithLocation(loc *time.Location) *Handler {
	if loc != nil {
		h.loc = loc
	}
	return h
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic based on the refresh loop.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Matches renders the current snapshot. ?team= filters the list, ?format=text returns plain text.
func (h *Handler) Matches(w nethttp.ResponseWriter, r *nethttp.Request) {
	snapshot := h.container.State()
	if team := r.URL.Query().Get("team"); team != "" {
		snapshot.Matches = view.FilterByTeam(snapshot.Matches, team)
	}
	screen := view.Render(snapshot)

	logger := loggerFromContext(r, h.logger)
	if logger != nil {
		logger.Info("served matches", "screen", string(screen.Kind), "count", len(screen.Rows))
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "text") {
		writeText(w, nethttp.StatusOK, view.RenderText(screen), h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, screen, h.logger)
}

// MatchByID dispatches MatchClicked for the id and returns the cached match.
func (h *Handler) MatchByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid match id", h.logger)
		return
	}

	if _, err := h.container.Run(r.Context(), state.MatchClicked(id)); err != nil {
		h.writeIntentError(w, r, err)
		return
	}

	match, err := h.reader.MatchByID(r.Context(), id)
	if errors.Is(err, repository.ErrMatchNotFound) {
		writeError(w, r, nethttp.StatusNotFound, "match not found", h.logger)
		return
	}
	if err != nil {
		writeError(w, r, nethttp.StatusInternalServerError, "lookup failed", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, match, h.logger)
}

// Refresh dispatches RefreshMatches. With ?wait=true it blocks and returns the resulting screen.
func (h *Handler) Refresh(w nethttp.ResponseWriter, r *nethttp.Request) {
	h.handleIntent(w, r, state.RefreshMatches(), wantsWait(r))
}

// MatchesByDate fetches fixtures for a calendar day without touching the live snapshot.
// The literal "today" resolves in ?tz= or the handler's location.
func (h *Handler) MatchesByDate(w nethttp.ResponseWriter, r *nethttp.Request) {
	raw := strings.TrimSpace(r.PathValue("date"))
	date := raw
	if strings.EqualFold(raw, "today") {
		loc := timeutil.ResolveLocation(r.URL.Query().Get("tz"), h.loc)
		date = timeutil.Today(h.now(), loc)
	} else if _, err := timeutil.ParseDate(raw); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format (expected YYYY-MM-DD)", h.logger)
		return
	}

	list, err := h.reader.MatchesByDate(r.Context(), date)
	if err != nil {
		logger := loggerFromContext(r, h.logger)
		if logger != nil {
			logger.Warn("date fetch failed", "date", date, "err", err)
		}
		writeError(w, r, nethttp.StatusBadGateway, "upstream unavailable", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, matches.NewDateResponse(date, list), h.logger)
}

func (h *Handler) handleIntent(w nethttp.ResponseWriter, r *nethttp.Request, intent state.Intent, wait bool) {
	if !wait {
		if err := h.container.Dispatch(intent); err != nil {
			h.writeIntentError(w, r, err)
			return
		}
		writeJSON(w, nethttp.StatusAccepted, map[string]string{"status": "accepted", "intent": intent.String()}, h.logger)
		return
	}

	next, err := h.container.Run(r.Context(), intent)
	if err != nil && !next.HasError() {
		h.writeIntentError(w, r, err)
		return
	}
	// Load failures are part of the rendered state, not a transport error.
	writeJSON(w, nethttp.StatusOK, view.Render(next), h.logger)
}

func (h *Handler) writeIntentError(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	switch {
	case errors.Is(err, state.ErrUnknownIntent), errors.Is(err, state.ErrMissingMatchID):
		writeError(w, r, nethttp.StatusBadRequest, err.Error(), h.logger)
	case errors.Is(err, state.ErrClosed):
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
	default:
		writeError(w, r, nethttp.StatusInternalServerError, err.Error(), h.logger)
	}
}

func wantsWait(r *nethttp.Request) bool {
	raw := r.URL.Query().Get("wait")
	if raw == "" {
		return false
	}
	v, err := strconv.ParseBool(raw)
	return err == nil && v
}
