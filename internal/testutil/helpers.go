package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/live-scores-service/internal/metrics"
)

// NowAt returns a clock function fixed at t.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NewBufferLogger returns a debug-level text logger writing into the returned buffer.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

// NewRecorderWithShutdown pairs an in-memory recorder with a no-op shutdown,
// matching the shape metrics.Setup returns.
func NewRecorderWithShutdown() (*metrics.Recorder, func(context.Context) error) {
	return metrics.NewRecorder(), func(context.Context) error { return nil }
}
