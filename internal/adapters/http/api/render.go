// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/okian/scorecard/internal/domain/match"
	"github.com/okian/scorecard/internal/render"
)

// renderRequest is the POST /render body: the tracked account plus the full
// match snapshot from the match-data provider.
type renderRequest struct {
	PUUID string      `json:"puuid"`
	Match match.Match `json:"match"`
}

func (r renderRequest) validate() error {
	switch {
	case strings.TrimSpace(r.PUUID) == "":
		return errors.New("missing puuid")
	case len(r.Match.Participants) == 0:
		return errors.New("match has no participants")
	}
	return nil
}

// RenderHandler handles scoreboard render requests.
type RenderHandler struct {
	deps Dependencies
}

// NewRenderHandler creates a new render handler.
func NewRenderHandler(deps Dependencies) *RenderHandler {
	return &RenderHandler{deps: deps}
}

// HandleRender handles POST /render requests and responds with image/png.
func (h *RenderHandler) HandleRender(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err)
		return
	}

	img, err := h.deps.RenderSummary(r.Context(), req.PUUID, &req.Match)
	if err != nil {
		status, code := renderErrorStatus(err)
		writeError(w, status, code, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

// renderErrorStatus maps render failures to HTTP statuses: bad input is the
// caller's fault, admission timeouts are retryable, cancellations are gateway
// timeouts.
func renderErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, render.ErrParticipantNotFound):
		return http.StatusBadRequest, "participant_not_found"
	case errors.Is(err, render.ErrAdmissionTimeout):
		return http.StatusTooManyRequests, "render_busy"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusGatewayTimeout, "render_cancelled"
	default:
		return http.StatusInternalServerError, "render_failed"
	}
}
