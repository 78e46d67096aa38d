package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/finchlabs/finchbot/internal/core"
	"github.com/finchlabs/finchbot/internal/service/agent"
	"github.com/finchlabs/finchbot/pkg/log"
)

type messageRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}

type messageResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type handler struct {
	agent *agent.Agent
}

func newRouter(ag *agent.Agent) http.Handler {
	h := &handler{agent: ag}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /agent/message", h.handleMessage)
	mux.HandleFunc("GET /healthz", h.handleHealth)
	return mux
}

func (h *handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromCtx(ctx)

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	req.Message = strings.TrimSpace(req.Message)
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.Message == "" || req.SessionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message and session_id are required"})
		return
	}

	reply, err := h.agent.Run(ctx, req.SessionID, req.Message)
	if err != nil {
		logger.Error().Err(err).Str("session_id", req.SessionID).Msg("agent run failed")
		writeJSON(w, statusFor(err), errorResponse{
			Error:   labelFor(err),
			Message: agent.FallbackMessage(err),
		})
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Reply: reply})
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func labelFor(err error) string {
	switch {
	case errors.Is(err, core.ErrRateLimited):
		return "Too many requests"
	case errors.Is(err, core.ErrUnauthorized):
		return "Service temporarily unavailable"
	default:
		return "Internal server error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
