// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/hashmark/spotlight/pkg/debuglog"
)

// DebugLogHandler serves and clears the diagnostic ring.
type DebugLogHandler struct {
	deps Dependencies
}

// NewDebugLogHandler creates a new debug log handler.
func NewDebugLogHandler(deps Dependencies) *DebugLogHandler {
	return &DebugLogHandler{deps: deps}
}

// debugLogResponse is the GET /debuglog payload.
type debugLogResponse struct {
	Entries     []debuglog.Entry         `json:"entries"`
	LastRequest *debuglog.RequestSummary `json:"lastRequest,omitempty"`
}

// HandleDebugLog handles GET and DELETE /debuglog requests.
func (h *DebugLogHandler) HandleDebugLog(w http.ResponseWriter, r *http.Request) {
	log := h.deps.DebugLog()

	switch r.Method {
	case http.MethodGet:
		resp := debugLogResponse{Entries: log.Entries()}
		if summary, ok := log.LastRequest(); ok {
			resp.LastRequest = &summary
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodDelete:
		log.Clear()
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
	default:
		http.NotFound(w, r)
	}
}
