package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/live-scores-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux.
func NewRouter(handler *handlers.Handler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("GET /health", handler.Health)
	mux.HandleFunc("GET /ready", handler.Ready)
	mux.HandleFunc("GET /matches", handler.Matches)
	mux.HandleFunc("GET /matches/{id}", handler.MatchByID)
	mux.HandleFunc("GET /matches/date/{date}", handler.MatchesByDate)
	mux.HandleFunc("POST /matches/refresh", handler.Refresh)
	mux.HandleFunc("POST /intents", handler.Intents)
	return mux
}
