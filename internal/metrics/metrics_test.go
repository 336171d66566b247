package metrics

import (
	"errors"
	"testing"
	"time"
)

func TestRecorderTracksProviderAttemptsAndErrors(t *testing.T) {
	rec := NewRecorder()

	rec.RecordProviderAttempt("apifootball", 10*time.Millisecond, nil)
	rec.RecordProviderAttempt("apifootball", 15*time.Millisecond, errors.New("boom"))

	if got := rec.ProviderCalls("apifootball"); got != 2 {
		t.Fatalf("expected 2 calls, got %d", got)
	}
	if got := rec.ProviderErrors("apifootball"); got != 1 {
		t.Fatalf("expected 1 error, got %d", got)
	}
	if got := rec.LastCallLatency("apifootball"); got != 15*time.Millisecond {
		t.Fatalf("expected last latency to be 15ms, got %s", got)
	}
}

func TestRecorderTracksRateLimits(t *testing.T) {
	rec := NewRecorder()

	rec.RecordRateLimit("apifootball", 5*time.Second)
	rec.RecordRateLimit("apifootball", 0)

	if got := rec.RateLimitHits("apifootball"); got != 2 {
		t.Fatalf("expected 2 rate limit hits, got %d", got)
	}
	if got := rec.LastRetryAfter("apifootball"); got != 5*time.Second {
		t.Fatalf("expected last retry-after to be 5s, got %s", got)
	}
}

func TestRecorderTracksStateLoads(t *testing.T) {
	rec := NewRecorder()

	rec.RecordStateLoad("load", 20*time.Millisecond, nil, false)
	rec.RecordStateLoad("refresh", 5*time.Millisecond, errors.New("boom"), true)

	loads := rec.Loads()
	if loads.Loads != 2 || loads.Errors != 1 || loads.Coalesced != 1 {
		t.Fatalf("unexpected load snapshot %+v", loads)
	}
	if loads.LastLoadMs != 5 {
		t.Fatalf("expected last load 5ms, got %d", loads.LastLoadMs)
	}
}

func TestNilRecorderIsSafe(t *testing.T) {
	var rec *Recorder
	rec.RecordProviderAttempt("p", time.Millisecond, nil)
	rec.RecordRateLimit("p", time.Second)
	rec.RecordStateLoad("load", time.Millisecond, nil, false)
	rec.RecordHTTPRequest("GET", "/", 200, time.Millisecond)
	rec.RecordRefreshCycle(time.Millisecond, nil)
	if rec.ProviderCalls("p") != 0 || rec.Loads().Loads != 0 {
		t.Fatalf("expected zero values from nil recorder")
	}
}
