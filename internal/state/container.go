package state

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sourcegraph/conc"
	"golang.org/x/sync/singleflight"

	"github.com/preston-bernstein/live-scores-service/internal/domain/matches"
	"github.com/preston-bernstein/live-scores-service/internal/logging"
	"github.com/preston-bernstein/live-scores-service/internal/metrics"
)

// ErrClosed is returned by Dispatch and Run after Close.
var ErrClosed = errors.New("state container closed")

const loadKey = "matches"

// Loader produces the match list for a load cycle.
type Loader interface {
	Invoke(ctx context.Context) ([]matches.Match, error)
}

// Options configures optional collaborators of a Container.
type Options struct {
	Logger  *slog.Logger
	Metrics *metrics.Recorder
	// OnMatchClick is the navigation hook run for MatchClicked intents.
	OnMatchClick func(ctx context.Context, matchID string)
}

// Container holds the current State and reduces intents into new snapshots.
//
// Loads are coalesced: a LoadMatches or RefreshMatches arriving while a fetch is in
// flight joins that fetch instead of racing it. IsLoading stays true while any caller
// is still waiting, so the flag cannot stick once every load has completed.
type Container struct {
	loader  Loader
	logger  *slog.Logger
	metrics *metrics.Recorder
	onClick func(ctx context.Context, matchID string)

	current atomic.Pointer[State]

	mu       sync.Mutex
	inflight int
	closed   bool
	subs     map[int]chan State
	nextSub  int

	gate  singleflight.Group
	tasks conc.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// New constructs a Container holding the initial snapshot.
func New(loader Loader, opts Options) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Container{
		loader:  loader,
		logger:  opts.Logger,
		metrics: opts.Metrics,
		onClick: opts.OnMatchClick,
		subs:    make(map[int]chan State),
		ctx:     ctx,
		cancel:  cancel,
	}
	initial := Initial()
	c.current.Store(&initial)
	return c
}

// State returns the latest snapshot.
func (c *Container) State() State {
	return *c.current.Load()
}

// Dispatch hands the intent to a background task and returns immediately.
func (c *Container) Dispatch(intent Intent) error {
	if err := intent.Validate(); err != nil {
		return err
	}
	if !c.spawn(func() { _, _ = c.Run(c.ctx, intent) }) {
		return ErrClosed
	}
	return nil
}

// Run handles the intent in the calling goroutine and returns the resulting snapshot.
// If ctx ends first the load keeps going in the background and its result is still applied.
func (c *Container) Run(ctx context.Context, intent Intent) (State, error) {
	if err := intent.Validate(); err != nil {
		return c.State(), err
	}
	if c.isClosed() {
		return c.State(), ErrClosed
	}
	switch intent.Type {
	case IntentMatchClicked:
		c.click(ctx, intent.MatchID)
		return c.State(), nil
	default:
		return c.load(ctx, intent)
	}
}

// Subscribe returns a channel that receives the current snapshot and every later one.
// Slow readers only see the latest snapshot. The channel closes when ctx ends or the container closes.
func (c *Container) Subscribe(ctx context.Context) <-chan State {
	ch := make(chan State, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		close(ch)
		return ch
	}
	id := c.nextSub
	c.nextSub++
	c.subs[id] = ch
	ch <- c.State()
	c.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-c.ctx.Done():
		}
		c.mu.Lock()
		if sub, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(sub)
		}
		c.mu.Unlock()
	}()
	return ch
}

// SyncMatches replaces the match list of the current snapshot, leaving the loading flag
// and error as they are. It is a no-op after Close.
func (c *Container) SyncMatches(list []matches.Match) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	next := *c.current.Load()
	next.Matches = append([]matches.Match{}, list...)
	c.publishLocked(next)
}

// Wait blocks until every dispatched task has finished.
func (c *Container) Wait() {
	c.tasks.Wait()
}

// Close cancels in-flight loads, discards their results, and closes subscriber channels.
func (c *Container) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.tasks.Wait()

	c.mu.Lock()
	for id, sub := range c.subs {
		delete(c.subs, id)
		close(sub)
	}
	c.mu.Unlock()
}

type loadResult struct {
	matches []matches.Match
	err     error
	shared  bool
}

func (c *Container) load(ctx context.Context, intent Intent) (State, error) {
	start := time.Now()
	if !c.begin() {
		return c.State(), ErrClosed
	}

	ch := c.gate.DoChan(loadKey, func() (any, error) {
		return c.loader.Invoke(c.ctx)
	})

	select {
	case res := <-ch:
		list, _ := res.Val.([]matches.Match)
		return c.finish(ctx, intent, start, loadResult{matches: list, err: res.Err, shared: res.Shared})
	case <-ctx.Done():
		// Keep the begin/finish pairing even though the caller stopped waiting.
		c.spawn(func() {
			res := <-ch
			list, _ := res.Val.([]matches.Match)
			_, _ = c.finish(c.ctx, intent, start, loadResult{matches: list, err: res.Err, shared: res.Shared})
		})
		return c.State(), ctx.Err()
	}
}

func (c *Container) begin() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.inflight++
	next := *c.current.Load()
	next.IsLoading = true
	next.Error = ""
	c.publishLocked(next)
	return true
}

func (c *Container) finish(ctx context.Context, intent Intent, start time.Time, res loadResult) (State, error) {
	c.metrics.RecordStateLoad(string(intent.Type), time.Since(start), res.err, res.shared)
	logger := logging.FromContext(ctx, c.logger)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return c.State(), ErrClosed
	}
	c.inflight--
	next := *c.current.Load()
	next.IsLoading = c.inflight > 0
	if res.err != nil {
		next.Error = res.err.Error()
	} else {
		next.Matches = res.matches
		if next.Matches == nil {
			next.Matches = []matches.Match{}
		}
		next.Error = ""
	}
	c.publishLocked(next)
	c.mu.Unlock()

	if res.err != nil {
		logging.Error(logger, "state load failed", res.err, logging.FieldIntent, intent.String())
		return next, res.err
	}
	logging.Debug(logger, "state loaded",
		logging.FieldIntent, intent.String(),
		logging.FieldCount, len(res.matches),
		"coalesced", res.shared,
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return next, nil
}

func (c *Container) click(ctx context.Context, matchID string) {
	logging.Info(logging.FromContext(ctx, c.logger), "match clicked",
		logging.FieldIntent, string(IntentMatchClicked), logging.FieldMatchID, matchID)
	if c.onClick != nil {
		c.onClick(ctx, matchID)
	}
}

// publishLocked stores next and pushes it to subscribers. Callers hold c.mu.
func (c *Container) publishLocked(next State) {
	c.current.Store(&next)
	for _, sub := range c.subs {
		select {
		case sub <- next:
		default:
			select {
			case <-sub:
			default:
			}
			sub <- next
		}
	}
}

// spawn registers fn with the task group unless the container is closed.
// Registration happens under c.mu so Close never waits while tasks are still being added.
func (c *Container) spawn(fn func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	c.tasks.Go(fn)
	return true
}

func (c *Container) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}
