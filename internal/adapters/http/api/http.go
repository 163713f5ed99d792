// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/okian/scorecard/internal/adapters/assetcache"
	"github.com/okian/scorecard/internal/domain/match"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// RenderSummary renders one tracked account's scoreboard as PNG bytes.
	RenderSummary(ctx context.Context, puuid string, m *match.Match) ([]byte, error)

	// CacheStats reports the on-disk asset cache contents.
	CacheStats(ctx context.Context) (assetcache.Stats, error)

	// CleanupCache deletes cached assets older than maxAge.
	CleanupCache(ctx context.Context, maxAge time.Duration) (int, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	renderHandler  *RenderHandler
	statsHandler   *StatsHandler
	cleanupHandler *CleanupHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:  NewHealthHandler(),
		renderHandler:  NewRenderHandler(deps),
		statsHandler:   NewStatsHandler(deps),
		cleanupHandler: NewCleanupHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/render", MetricsMiddleware(s.renderHandler.HandleRender, "render"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/cleanup", MetricsMiddleware(s.cleanupHandler.HandleCleanup, "cleanup"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
