package api

import (
	"html/template"
	"net/http"
	"net/url"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html>
  <head>
    <meta charset="utf-8">
    <title>Radar Charts</title>
    <style>body{font-family:sans-serif;margin:2em}img{max-width:100%}li{margin:.3em 0}</style>
  </head>
  <body>
    <h1>Radar Charts</h1>
    <p>{{len .Entities}} entities, {{len .Dimensions}} dimensions. <a href="/summary">Summary</a> · <a href="/healthz">Metrics</a></p>
    <img src="/chart.png" alt="Combined radar chart">
    <ul>
    {{- range .Links}}
      <li><a href="{{.Href}}">{{.Name}}</a></li>
    {{- end}}
    </ul>
  </body>
</html>
`)) //nolint:gochecknoglobals // parsed once

type indexLink struct {
	Name string
	Href string
}

// IndexHandler serves a page linking every chart.
type IndexHandler struct {
	renderer Renderer
}

// NewIndexHandler creates a new index handler.
func NewIndexHandler(r Renderer) *IndexHandler {
	return &IndexHandler{renderer: r}
}

// HandleIndex handles GET / requests.
func (h *IndexHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if !requireGET(w, r) {
		return
	}
	rep := h.renderer.Summary()
	links := make([]indexLink, len(rep.Entities))
	for i, name := range rep.Entities {
		links[i] = indexLink{Name: name, Href: chartsPrefix + url.PathEscape(name) + pngSuffix}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_ = indexTemplate.Execute(w, struct {
		Entities   []string
		Dimensions []string
		Links      []indexLink
	}{rep.Entities, rep.Dimensions, links})
}
