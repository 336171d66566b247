package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/live-scores-service/internal/app/matches"
	"github.com/preston-bernstein/live-scores-service/internal/config"
	httpserver "github.com/preston-bernstein/live-scores-service/internal/http"
	"github.com/preston-bernstein/live-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/live-scores-service/internal/http/middleware"
	"github.com/preston-bernstein/live-scores-service/internal/logging"
	"github.com/preston-bernstein/live-scores-service/internal/metrics"
	"github.com/preston-bernstein/live-scores-service/internal/poller"
	"github.com/preston-bernstein/live-scores-service/internal/providers"
	"github.com/preston-bernstein/live-scores-service/internal/repository"
	"github.com/preston-bernstein/live-scores-service/internal/state"
	"github.com/preston-bernstein/live-scores-service/internal/store"
	"github.com/preston-bernstein/live-scores-service/internal/timeutil"
)

var metricsSetup = metrics.Setup

// Poller is the refresh-loop behavior the server drives.
type Poller interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
}

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	repo          *repository.Repository
	container     *state.Container
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.MatchProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	if provider == nil {
		provider = newProviderFactory(logger, recorder).build(cfg)
	} else {
		provider = providers.NewRetryingProvider(provider, logger, recorder, normalizeProviderName(cfg.Provider, provider), 0, 0)
	}

	repo := repository.New(provider, store.NewMemoryStore(), repository.ParseFailurePolicy(cfg.FailurePolicy), logger)
	container := state.New(matches.NewGetMatches(repo), state.Options{
		Logger:       logger,
		Metrics:      recorder,
		OnMatchClick: matchClickLogger(logger),
	})
	repo.OnSnapshotChange(container.SyncMatches)
	plr := poller.New(container, logger, recorder, cfg.RefreshInterval)
	httpSrv := buildHTTPServer(cfg, container, repo, logger, recorder, plr)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		repo:          repo,
		container:     container,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildHTTPServer(cfg config.Config, container *state.Container, repo *repository.Repository, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}

	handler := handlers.NewHandler(container, repo, logger, statusFn).
		WithLocation(timeutil.ResolveLocation(cfg.APIFootball.Timezone, time.UTC))
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// matchClickLogger is the navigation hook for MatchClicked. A server has nowhere to
// navigate, so it records the selection.
func matchClickLogger(logger *slog.Logger) func(ctx context.Context, matchID string) {
	return func(ctx context.Context, matchID string) {
		logging.Info(logging.FromContext(ctx, logger), "match selected", slog.String(logging.FieldMatchID, matchID))
	}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
// The poller's first cycle is the initial LoadMatches.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.poller.Stop(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("failed to stop poller", "error", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	// In-flight loads finish or are canceled before the container releases subscribers.
	if s.container != nil {
		s.container.Close()
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
