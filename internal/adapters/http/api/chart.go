package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/radar/internal/domain/table"
	"github.com/okian/radar/pkg/logger"
)

const (
	chartsPrefix = "/charts/"
	pngSuffix    = ".png"
	pngType      = "image/png"
)

// ChartHandler renders charts on request.
type ChartHandler struct {
	renderer Renderer
	logger   logger.Logger
}

// NewChartHandler creates a new chart handler.
func NewChartHandler(r Renderer, l logger.Logger) *ChartHandler {
	return &ChartHandler{renderer: r, logger: l}
}

// HandleCombined handles GET /chart.png?title=... with every entity drawn.
func (h *ChartHandler) HandleCombined(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	h.write(w, r, r.URL.Query().Get("title"))
}

// HandleEntity handles GET /charts/{entity}.png.
func (h *ChartHandler) HandleEntity(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	name := strings.TrimPrefix(r.URL.Path, chartsPrefix)
	if !strings.HasSuffix(name, pngSuffix) || name == pngSuffix {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: expected %s{entity}%s", ErrBadRequest, chartsPrefix, pngSuffix))
		return
	}
	entity := strings.TrimSuffix(name, pngSuffix)
	h.write(w, r, r.URL.Query().Get("title"), entity)
}

func (h *ChartHandler) write(w http.ResponseWriter, r *http.Request, title string, entities ...string) {
	var buf bytes.Buffer
	if _, err := h.renderer.WriteChart(r.Context(), &buf, "png", title, entities...); err != nil {
		if errors.Is(err, table.ErrUnknownEntity) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		h.logger.Error(r.Context(), "failed to render chart", logger.String("path", r.URL.Path), logger.Error(err))
		writeError(w, http.StatusInternalServerError, "render_failed", err)
		return
	}
	w.Header().Set("Content-Type", pngType)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
