// Package api declares HTTP contracts and route registration helpers.
package api

import "net/http"

// SpotlightHandler serves the latest snapshot.
type SpotlightHandler struct {
	deps Dependencies
}

// NewSpotlightHandler creates a new spotlight handler.
func NewSpotlightHandler(deps Dependencies) *SpotlightHandler {
	return &SpotlightHandler{deps: deps}
}

// HandleGetSpotlight handles GET /spotlight requests. Until the first
// refresh cycle completes it answers 503 so the renderer can retry.
func (h *SpotlightHandler) HandleGetSpotlight(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	snapshot, err := h.deps.Snapshot()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "snapshot_unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}
