package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/preston-bernstein/live-scores-service/internal/poller"
)

// ErrListen is the ListenAndServe error returned by FailingHTTPServer.
var ErrListen = errors.New("listen failure")

// StubPoller records Start/Stop calls and reports a fixed status.
type StubPoller struct {
	Err       error
	StatusVal poller.Status

	mu     sync.Mutex
	starts int
	stops  int
}

func (p *StubPoller) Start(ctx context.Context) {
	_ = ctx
	p.mu.Lock()
	p.starts++
	p.mu.Unlock()
}

func (p *StubPoller) Stop(ctx context.Context) error {
	_ = ctx
	p.mu.Lock()
	p.stops++
	p.mu.Unlock()
	return p.Err
}

func (p *StubPoller) Status() poller.Status {
	return p.StatusVal
}

// StartCalls reports how many times Start ran.
func (p *StubPoller) StartCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.starts
}

// StopCalls reports how many times Stop ran.
func (p *StubPoller) StopCalls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stops
}

// StubHTTPServer stands in for the server's HTTP listener.
// ListenAndServe returns ListenErr immediately. When Unblock is set, Shutdown waits
// for it to close or for ctx to end.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Unblock     chan struct{}

	mu        sync.Mutex
	listens   int
	shutdowns int
}

// FailingHTTPServer returns a stub whose ListenAndServe fails with ErrListen.
func FailingHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{ListenErr: ErrListen}
}

// ClosedHTTPServer returns a stub whose ListenAndServe reports a clean close.
func ClosedHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{ListenErr: http.ErrServerClosed}
}

// BlockingHTTPServer returns a stub whose Shutdown blocks until unblock closes.
func BlockingHTTPServer(unblock chan struct{}) *StubHTTPServer {
	return &StubHTTPServer{Unblock: unblock}
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.listens++
	s.mu.Unlock()
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.shutdowns++
	s.mu.Unlock()
	if s.Unblock == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Unblock:
		return s.ShutdownErr
	}
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NewServeMux()
	}
	return s.HandlerVal
}

// ListenCalls reports how many times ListenAndServe ran.
func (s *StubHTTPServer) ListenCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listens
}

// ShutdownCalls reports how many times Shutdown ran.
func (s *StubHTTPServer) ShutdownCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdowns
}
