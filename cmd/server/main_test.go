package main

import (
	"strings"
	"testing"
)

// Smoke test to ensure main honors SKIP_SERVER_RUN and does not block test runs.
func TestMainSkipsWhenEnvSet(t *testing.T) {
	t.Setenv("SKIP_SERVER_RUN", "1")
	main()
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	t.Setenv("ENV_FILE", "does-not-exist.env")
	t.Setenv("PROVIDER", "scoreboard")

	err := run()
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}
