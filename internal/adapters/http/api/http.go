// Package api serves rendered charts, the data summary and metrics over HTTP.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/okian/radar/internal/domain/summary"
	"github.com/okian/radar/pkg/logger"
)

// Renderer is what the handlers need from the chart generator.
type Renderer interface {
	// WriteChart renders the named entities, or all of them when none are
	// given, to w in format.
	WriteChart(ctx context.Context, w io.Writer, format, title string, entities ...string) (int64, error)
	Summary() summary.Report
}

// Server wires HTTP routes for the preview surface.
type Server struct {
	healthHandler  *HealthHandler
	summaryHandler *SummaryHandler
	chartHandler   *ChartHandler
	indexHandler   *IndexHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(r Renderer, l logger.Logger) *Server {
	if l == nil {
		l = logger.Nop()
	}
	return &Server{
		healthHandler:  NewHealthHandler(),
		summaryHandler: NewSummaryHandler(r),
		chartHandler:   NewChartHandler(r, l),
		indexHandler:   NewIndexHandler(r),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/summary", MetricsMiddleware(s.summaryHandler.HandleSummary, "summary"))
	mux.HandleFunc("/chart.png", MetricsMiddleware(s.chartHandler.HandleCombined, "chart"))
	mux.HandleFunc("/charts/", MetricsMiddleware(s.chartHandler.HandleEntity, "charts"))
	mux.HandleFunc("/{$}", MetricsMiddleware(s.indexHandler.HandleIndex, "index"))
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

func requireGET(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusNotFound, "not_found", nil)
		return false
	}
	return true
}
