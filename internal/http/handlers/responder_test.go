package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/live-scores-service/internal/testutil"
)

type failingPayload struct{}

func (failingPayload) MarshalJSON() ([]byte, error) {
	return nil, errors.New("cannot encode")
}

func TestWriteErrorIncludesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	logger, _ := testutil.NewBufferLogger()

	req.Header.Set("X-Request-ID", "abc123")

	rr := testutil.ServeRequest(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, http.StatusTeapot, "boom", logger)
	}), req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", rr.Code)
	}
	if got := rr.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("expected content type json, got %s", got)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("abc123")) {
		t.Fatalf("expected requestId in body, got %s", rr.Body.String())
	}
}

func TestWriteJSONLogsEncodeError(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rr := testutil.Serve(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, failingPayload{}, logger)
	}), http.MethodGet, "/encode-error", nil)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status written even on encode error, got %d", rr.Code)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected logger to record encode error")
	}
}

func TestWriteTextSetsContentType(t *testing.T) {
	rr := httptest.NewRecorder()
	writeText(rr, http.StatusOK, "hello\n", nil)
	if got := rr.Header().Get("Content-Type"); got != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %s", got)
	}
	if rr.Body.String() != "hello\n" {
		t.Fatalf("unexpected body %q", rr.Body.String())
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	if got := loggerFromContext(nil, logger); got != logger {
		t.Fatalf("expected fallback logger for nil request")
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := loggerFromContext(req, logger); got != logger {
		t.Fatalf("expected fallback logger when context has none")
	}
}

func TestWriteErrorFallsBackToHeaderRequestID(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "header-id")
	writeError(rr, req, http.StatusTeapot, "boom", logger)
	if !bytes.Contains(rr.Body.Bytes(), []byte("header-id")) {
		t.Fatalf("expected header request id used when context missing")
	}
}
