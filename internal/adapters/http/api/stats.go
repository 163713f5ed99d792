// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// defaultCleanupMaxAge applies when POST /cleanup omits max_age.
const defaultCleanupMaxAge = 30 * 24 * time.Hour

// StatsHandler handles cache stats requests.
type StatsHandler struct {
	deps Dependencies
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(deps Dependencies) *StatsHandler {
	return &StatsHandler{deps: deps}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	stats, err := h.deps.CacheStats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"cache": stats})
}

// CleanupHandler handles cache cleanup requests.
type CleanupHandler struct {
	deps Dependencies
}

// NewCleanupHandler creates a new cleanup handler.
func NewCleanupHandler(deps Dependencies) *CleanupHandler {
	return &CleanupHandler{deps: deps}
}

// HandleCleanup handles POST /cleanup?max_age=720h requests.
func (h *CleanupHandler) HandleCleanup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	maxAge := defaultCleanupMaxAge
	if raw := r.URL.Query().Get("max_age"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_max_age", err)
			return
		}
		maxAge = parsed
	}

	deleted, err := h.deps.CleanupCache(r.Context(), maxAge)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "cleanup_failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": deleted})
}
