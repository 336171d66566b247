package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/live-scores-service/internal/logging"
	"github.com/preston-bernstein/live-scores-service/internal/metrics"
	"github.com/preston-bernstein/live-scores-service/internal/state"
)

const (
	defaultInterval = time.Minute
	maxFailures     = 3
)

// IntentRunner runs one intent to completion. *state.Container satisfies it.
type IntentRunner interface {
	Run(ctx context.Context, intent state.Intent) (state.State, error)
}

// Poller mounts the screen with LoadMatches and then sends RefreshMatches on an interval.
type Poller struct {
	runner   IntentRunner
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool
	mounted  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the loop has had a success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < maxFailures
}

// New constructs a Poller with sane defaults.
func New(runner IntentRunner, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Poller{
		runner:   runner,
		logger:   logger,
		metrics:  recorder,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins refreshing until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	p.startMu.Unlock()

	go func() {
		logging.Info(p.logger, "refresher started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		p.runOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				logging.Info(p.logger, "refresher stopped")
				return
			case <-p.done:
				p.stopTicker()
				logging.Info(p.logger, "refresher stopped")
				return
			case <-p.ticker.C:
				p.runOnce(ctx)
			}
		}
	}()
}

// Stop halts the refresh loop.
func (p *Poller) Stop(ctx context.Context) error {
	_ = ctx
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
	return nil
}

// runOnce sends LoadMatches the first time and RefreshMatches afterwards.
func (p *Poller) runOnce(ctx context.Context) {
	intent := state.RefreshMatches()
	if !p.mounted {
		intent = state.LoadMatches()
	}

	start := p.now()
	p.recordAttempt(start)
	snap, err := p.runner.Run(ctx, intent)
	elapsed := p.now().Sub(start)
	p.metrics.RecordRefreshCycle(elapsed, err)
	if err != nil {
		logging.Error(p.logger, "refresh failed", err,
			logging.FieldIntent, intent.String(),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
		)
		p.recordFailure(err, start)
		return
	}

	p.mounted = true
	p.recordSuccess(start)
	logging.Info(p.logger, "matches refreshed",
		logging.FieldIntent, intent.String(),
		logging.FieldCount, len(snap.Matches),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the loop's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}
