// Package api declares HTTP contracts and route registration helpers for
// the renderer-facing surface: the latest snapshot, the diagnostic log and
// service statistics.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hashmark/spotlight/internal/domain/model"
	"github.com/hashmark/spotlight/pkg/debuglog"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to the service implementation.
type Dependencies interface {
	// Snapshot returns the latest published snapshot. An error means no
	// snapshot has been produced yet.
	Snapshot() (*model.Snapshot, error)

	// DebugLog exposes the diagnostic ring buffer.
	DebugLog() *debuglog.Log

	// Stats reports service counters.
	Stats() map[string]any
}

// Server wires HTTP routes for the spotlight API.
type Server struct {
	healthHandler    *HealthHandler
	spotlightHandler *SpotlightHandler
	debugLogHandler  *DebugLogHandler
	statsHandler     *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		spotlightHandler: NewSpotlightHandler(deps),
		debugLogHandler:  NewDebugLogHandler(deps),
		statsHandler:     NewStatsHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/spotlight", MetricsMiddleware(s.spotlightHandler.HandleGetSpotlight, "spotlight"))
	mux.HandleFunc("/debuglog", MetricsMiddleware(s.debugLogHandler.HandleDebugLog, "debuglog"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
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
