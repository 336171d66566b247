package apifootball

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/providers"
	"github.com/preston-bernstein/live-scores-service/internal/timeutil"
)

var (
	// ErrUnexpectedStatus marks non-2xx upstream responses other than 429.
	ErrUnexpectedStatus = crerr.New("apifootball: unexpected status")
	// ErrDecode marks bodies that are not a fixtures envelope.
	ErrDecode = crerr.New("apifootball: decode response")
	// ErrAPI marks envelopes that carry a non-empty errors field.
	ErrAPI = crerr.New("apifootball: api error")
)

// Config controls how the api-football client reaches the upstream API.
type Config struct {
	BaseURL    string
	APIKey     string
	APIHost    string
	Timezone   string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client fetches fixtures from api-football and maps them to domain matches.
// It performs a single attempt per call; retries belong to the provider decorators.
type Client struct {
	baseURL    string
	apiKey     string
	apiHost    string
	httpClient httpDoer
	now        func() time.Time
	loc        *time.Location
}

// NewClient constructs an api-football client with the provided configuration.
func NewClient(cfg Config) *Client {
	host := cfg.APIHost
	if host == "" {
		host = defaultAPIHost
	}
	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     cfg.APIKey,
		apiHost:    host,
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		now:        time.Now,
		loc:        resolveLocation(cfg.Timezone),
	}
}

var _ providers.MatchProvider = (*Client)(nil)

// FetchLiveMatches retrieves every fixture currently in play.
func (c *Client) FetchLiveMatches(ctx context.Context) ([]matches.Match, error) {
	recs, err := c.fetch(ctx, map[string]string{"live": liveAll})
	if err != nil {
		return nil, err
	}
	return MapFixtures(recs), nil
}

// FetchMatchesByDate retrieves every fixture on date, resolved in the client's timezone.
func (c *Client) FetchMatchesByDate(ctx context.Context, date string) ([]matches.Match, error) {
	recs, err := c.fetch(ctx, map[string]string{
		"date":     timeutil.NormalizeDate(date, c.now(), c.loc),
		"timezone": c.loc.String(),
	})
	if err != nil {
		return nil, err
	}
	return MapFixtures(recs), nil
}

func (c *Client) fetch(ctx context.Context, params map[string]string) ([]FixtureRecord, error) {
	req, err := c.buildRequest(ctx, params)
	if err != nil {
		return nil, crerr.Wrap(err, "apifootball: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Wrap(err, "apifootball: request")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyBytes))
		return nil, &providers.RateLimitError{
			Provider:   providerName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), c.now()),
			Remaining:  resp.Header.Get(headerRemaining),
			Message:    strings.TrimSpace(string(body)),
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyBytes))
		return nil, crerr.Wrapf(ErrUnexpectedStatus, "status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, crerr.Wrap(err, "apifootball: read body")
	}
	var payload fixturesResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return nil, crerr.Wrapf(ErrDecode, "%v", err)
	}
	if msg := envelopeErrors(payload.Errors); msg != "" {
		return nil, crerr.Wrapf(ErrAPI, "%s", msg)
	}
	return payload.Response, nil
}

func (c *Client) buildRequest(ctx context.Context, params map[string]string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+fixturesPath, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerAPIHost, c.apiHost)
	if c.apiKey != "" {
		req.Header.Set(headerAPIKey, c.apiKey)
	}
	return req, nil
}

// envelopeErrors flattens the errors field; it is empty when the request succeeded.
func envelopeErrors(v any) string {
	switch errs := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, 0, len(errs))
		for _, e := range errs {
			if s, ok := e.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		if len(parts) == 0 && len(errs) > 0 {
			return "unspecified error"
		}
		return strings.Join(parts, "; ")
	case map[string]any:
		parts := make([]string, 0, len(errs))
		for k, e := range errs {
			if s, ok := e.(string); ok {
				parts = append(parts, k+": "+s)
			} else {
				parts = append(parts, k)
			}
		}
		sort.Strings(parts)
		return strings.Join(parts, "; ")
	case string:
		return errs
	default:
		return ""
	}
}
