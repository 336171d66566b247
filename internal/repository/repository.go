package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/logging"
	"github.com/preston-bernstein/live-scores-service/internal/providers"
)

var (
	// ErrMatchNotFound is returned when an ID is not part of the last fetched snapshot.
	ErrMatchNotFound = errors.New("match not found")
	// ErrInvalidStatus is returned by UpdateMatchStatus for unknown statuses.
	ErrInvalidStatus = errors.New("invalid match status")
)

// FailurePolicy decides what Matches returns when the upstream fetch fails.
type FailurePolicy int

const (
	// Propagate returns the fetch error to the caller.
	Propagate FailurePolicy = iota
	// FailSoft logs the error and returns an empty list, so callers cannot tell a failure from no matches.
	FailSoft
)

// ParseFailurePolicy maps a config value to a FailurePolicy. Unknown values propagate.
func ParseFailurePolicy(raw string) FailurePolicy {
	if strings.EqualFold(strings.TrimSpace(raw), "failsoft") {
		return FailSoft
	}
	return Propagate
}

func (p FailurePolicy) String() string {
	if p == FailSoft {
		return "failsoft"
	}
	return "propagate"
}

// Store defines the contract for persisting and retrieving the live snapshot.
type Store interface {
	ListMatches() []matches.Match
	GetMatch(id string) (matches.Match, bool)
	SetMatches(list []matches.Match)
	UpdateMatch(id string, fn func(matches.Match) matches.Match) (matches.Match, bool)
}

// Repository fetches matches from a provider and keeps the last live snapshot.
type Repository struct {
	provider providers.MatchProvider
	store    Store
	policy   FailurePolicy
	logger   *slog.Logger
	onChange func([]matches.Match)
}

// New constructs a Repository.
func New(provider providers.MatchProvider, store Store, policy FailurePolicy, logger *slog.Logger) *Repository {
	return &Repository{
		provider: provider,
		store:    store,
		policy:   policy,
		logger:   logger,
	}
}

// OnSnapshotChange registers fn to receive the live snapshot after a single match is updated.
func (r *Repository) OnSnapshotChange(fn func([]matches.Match)) {
	r.onChange = fn
}

// Matches fetches live matches once, stores them, and returns them in upstream order.
func (r *Repository) Matches(ctx context.Context) ([]matches.Match, error) {
	list, err := r.fetchLive(ctx)
	if err != nil {
		if r.policy == FailSoft {
			// The empty list callers receive is also what lookups by ID see.
			r.store.SetMatches(nil)
		}
		return r.onFailure(ctx, "live", err)
	}
	return list, nil
}

// RefreshMatches re-fetches live matches and replaces the snapshot. It ignores the failure policy.
func (r *Repository) RefreshMatches(ctx context.Context) error {
	_, err := r.fetchLive(ctx)
	return err
}

// MatchesByDate fetches matches for a YYYY-MM-DD date without touching the live snapshot.
func (r *Repository) MatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	if r.provider == nil {
		return r.onFailure(ctx, date, providers.ErrProviderUnavailable)
	}
	list, err := r.provider.FetchMatchesByDate(ctx, date)
	if err != nil {
		return r.onFailure(ctx, date, fmt.Errorf("fetch matches for %s: %w", date, err))
	}
	return nonNil(list), nil
}

// MatchByID returns a match from the last fetched snapshot.
func (r *Repository) MatchByID(ctx context.Context, id string) (matches.Match, error) {
	_ = ctx
	m, ok := r.store.GetMatch(id)
	if !ok {
		return matches.Match{}, fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	return m, nil
}

// UpdateMatchScore replaces the cached match with one carrying the new score.
func (r *Repository) UpdateMatchScore(ctx context.Context, id string, home, away int) error {
	if _, ok := r.store.UpdateMatch(id, func(m matches.Match) matches.Match {
		return m.WithScore(home, away)
	}); !ok {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	r.notify()
	logging.Info(logging.FromContext(ctx, r.logger), "match score updated",
		logging.FieldMatchID, id, "home", home, "away", away)
	return nil
}

// UpdateMatchStatus replaces the cached match with one carrying the new status.
func (r *Repository) UpdateMatchStatus(ctx context.Context, id string, status matches.Status) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if _, ok := r.store.UpdateMatch(id, func(m matches.Match) matches.Match {
		return m.WithStatus(status)
	}); !ok {
		return fmt.Errorf("%w: %s", ErrMatchNotFound, id)
	}
	r.notify()
	logging.Info(logging.FromContext(ctx, r.logger), "match status updated",
		logging.FieldMatchID, id, "status", string(status))
	return nil
}

func (r *Repository) fetchLive(ctx context.Context) ([]matches.Match, error) {
	if r.provider == nil {
		return nil, providers.ErrProviderUnavailable
	}
	list, err := r.provider.FetchLiveMatches(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch live matches: %w", err)
	}
	list = nonNil(list)
	r.store.SetMatches(list)
	return list, nil
}

func (r *Repository) onFailure(ctx context.Context, target string, err error) ([]matches.Match, error) {
	logger := logging.FromContext(ctx, r.logger)
	if r.policy == FailSoft {
		logging.Warn(logger, "match fetch failed, returning empty list", "target", target, "error", err)
		return []matches.Match{}, nil
	}
	logging.Error(logger, "match fetch failed", err, "target", target)
	return nil, err
}

func (r *Repository) notify() {
	if r.onChange != nil {
		r.onChange(r.store.ListMatches())
	}
}

func nonNil(list []matches.Match) []matches.Match {
	if list == nil {
		return []matches.Match{}
	}
	return list
}
