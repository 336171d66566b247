package testutil

import (
	"context"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/providers"
)

// GoodProvider returns the provided matches with no error for every filter.
type GoodProvider struct {
	Matches []matches.Match
}

func (p GoodProvider) FetchLiveMatches(ctx context.Context) ([]matches.Match, error) {
	_ = ctx
	return p.Matches, nil
}

func (p GoodProvider) FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	_ = ctx
	_ = date
	return p.Matches, nil
}

// ErrProvider always returns the provided error.
type ErrProvider struct {
	Err error
}

func (p ErrProvider) FetchLiveMatches(ctx context.Context) ([]matches.Match, error) {
	return nil, p.Err
}

func (p ErrProvider) FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	return nil, p.Err
}

// EmptyProvider returns no matches, no error.
type EmptyProvider struct{}

func (EmptyProvider) FetchLiveMatches(ctx context.Context) ([]matches.Match, error) {
	return []matches.Match{}, nil
}

func (EmptyProvider) FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	return []matches.Match{}, nil
}

// UnavailableProvider returns ErrProviderUnavailable.
type UnavailableProvider struct{}

func (UnavailableProvider) FetchLiveMatches(ctx context.Context) ([]matches.Match, error) {
	return nil, providers.ErrProviderUnavailable
}

func (UnavailableProvider) FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	return nil, providers.ErrProviderUnavailable
}

// NotifyingProvider returns matches and closes Notify on the first live fetch.
type NotifyingProvider struct {
	Matches []matches.Match
	Notify  chan struct{}
}

func (p *NotifyingProvider) FetchLiveMatches(ctx context.Context) ([]matches.Match, error) {
	_ = ctx
	if p.Notify != nil {
		select {
		case <-p.Notify:
		default:
			close(p.Notify)
		}
	}
	return p.Matches, nil
}

func (p *NotifyingProvider) FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	_ = ctx
	_ = date
	return p.Matches, nil
}
