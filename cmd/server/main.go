package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/preston-bernstein/live-scores-service/internal/config"
	"github.com/preston-bernstein/live-scores-service/internal/logging"
	"github.com/preston-bernstein/live-scores-service/internal/server"
)

const (
	appName    = "live-scores-service"
	appVersion = "dev"
)

func main() {
	if os.Getenv("SKIP_SERVER_RUN") == "1" {
		return
	}
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.NewLogger(logging.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: appName,
		Version: appVersion,
	})
	logger.Info("config loaded",
		logging.FieldProvider, cfg.Provider,
		"refresh_interval", cfg.RefreshInterval.String(),
		"failure_policy", cfg.FailurePolicy,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server.New(cfg, logger).Run(ctx, stop)
	return nil
}
