package api

import (
	"net/http"
)

// SummaryHandler serves the data summary.
type SummaryHandler struct {
	renderer Renderer
}

// NewSummaryHandler creates a new summary handler.
func NewSummaryHandler(r Renderer) *SummaryHandler {
	return &SummaryHandler{renderer: r}
}

// HandleSummary handles GET /summary requests.
func (h *SummaryHandler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, h.renderer.Summary())
}
