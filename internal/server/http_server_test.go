package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"
)

type stubListener struct {
	addr net.Addr
}

func (s *stubListener) Accept() (net.Conn, error) { return nil, errors.New("accept failure") }
func (s *stubListener) Close() error              { return nil }
func (s *stubListener) Addr() net.Addr            { return s.addr }

func TestNetHTTPServerSurfacesListenerErrors(t *testing.T) {
	l := &stubListener{addr: &net.TCPAddr{IP: net.IPv4zero, Port: 0}}
	s := netHTTPServer{srv: &http.Server{Handler: http.NewServeMux()}, listener: l}

	if err := s.ListenAndServe(); err == nil {
		t.Fatalf("expected serve error from stub listener")
	}
}

func TestNetHTTPServerServesOnInjectedListener(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	s := netHTTPServer{srv: &http.Server{Handler: mux, ReadHeaderTimeout: time.Second}, listener: l}

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	resp, err := http.Get("http://" + l.Addr().String() + "/health")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("unexpected response %d %q", resp.StatusCode, body)
	}

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	select {
	case err := <-done:
		if !errors.Is(err, http.ErrServerClosed) {
			t.Fatalf("expected ErrServerClosed, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("serve did not return after shutdown")
	}
}

func TestNetHTTPServerAccessors(t *testing.T) {
	handler := http.NewServeMux()
	s := netHTTPServer{srv: &http.Server{Addr: ":4000", Handler: handler}}

	if s.Addr() != ":4000" {
		t.Fatalf("expected addr passthrough")
	}
	if s.Handler() != handler {
		t.Fatalf("expected handler passthrough")
	}
}
