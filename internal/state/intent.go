package state

import (
	"errors"
	"fmt"
	"strings"
)

// IntentType names one of the actions the container understands.
type IntentType string

const (
	IntentLoadMatches    IntentType = "LoadMatches"
	IntentRefreshMatches IntentType = "RefreshMatches"
	IntentMatchClicked   IntentType = "MatchClicked"
)

var (
	// ErrUnknownIntent is returned for intent types outside the closed set.
	ErrUnknownIntent = errors.New("unknown intent")
	// ErrMissingMatchID is returned for a MatchClicked intent without an ID.
	ErrMissingMatchID = errors.New("match id is required")
)

// Intent is a user action consumed by the container.
type Intent struct {
	Type    IntentType
	MatchID string
}

// LoadMatches is the initial fetch intent.
func LoadMatches() Intent { return Intent{Type: IntentLoadMatches} }

// RefreshMatches re-runs the fetch on demand.
func RefreshMatches() Intent { return Intent{Type: IntentRefreshMatches} }

// MatchClicked reports a selection of the match with id.
func MatchClicked(id string) Intent {
	return Intent{Type: IntentMatchClicked, MatchID: id}
}

// ParseIntentType accepts the canonical names case-insensitively.
func ParseIntentType(raw string) (IntentType, error) {
	for _, t := range []IntentType{IntentLoadMatches, IntentRefreshMatches, IntentMatchClicked} {
		if strings.EqualFold(strings.TrimSpace(raw), string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIntent, raw)
}

// Validate checks the intent belongs to the closed set and carries what it needs.
func (i Intent) Validate() error {
	switch i.Type {
	case IntentLoadMatches, IntentRefreshMatches:
		return nil
	case IntentMatchClicked:
		if strings.TrimSpace(i.MatchID) == "" {
			return ErrMissingMatchID
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownIntent, i.Type)
	}
}

func (i Intent) String() string {
	if i.MatchID != "" {
		return fmt.Sprintf("%s(%s)", i.Type, i.MatchID)
	}
	return string(i.Type)
}
