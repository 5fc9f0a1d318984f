package mcp

import (
	"html/template"
	"net/http"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

var referenceTemplate = template.Must(template.New("reference").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} · DemoSDK Reference</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; background: #0f172a; color: #e2e8f0; margin: 0; display: flex; }
  nav { width: 240px; padding: 1.5rem; background: #1e293b; min-height: 100vh; font-size: 0.9rem; }
  nav ul { padding-left: 1rem; }
  main { flex: 1; padding: 2rem 3rem; max-width: 900px; }
  a { color: #38bdf8; text-decoration: none; }
  pre { background: #1e293b; border: 1px solid #334155; border-radius: 8px; padding: 1rem; overflow-x: auto; }
  code { font-family: "SF Mono", "Fira Code", Menlo, monospace; }
  .kind { color: #94a3b8; text-transform: uppercase; font-size: 0.75rem; letter-spacing: 0.1em; }
</style>
</head>
<body>
<nav><a href="/">DemoSDK Docs</a>{{.TOC}}</nav>
<main><div class="kind">{{.Kind}}</div>{{.Body}}</main>
</body>
</html>`))

// handleReference renders /reference/{kind}/{name} as an HTML page built from the
// same markdown get_class_docs returns.
func (s *Server) handleReference(w http.ResponseWriter, r *http.Request) {
	kind, err := docs.ParseKind(r.PathValue("kind"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	eng, err := engine(r.Context(), s.library)
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
	entry, ok := eng.EntryByName(kind, r.PathValue("name"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	page, err := s.renderer.Render([]byte(formatEntry(entry)))
	if err != nil {
		s.logger.Warn("Failed to render reference page", "kind", kind, "name", entry.FullName, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err = referenceTemplate.Execute(w, struct {
		Title string
		Kind  docs.Kind
		TOC   template.HTML
		Body  template.HTML
	}{page.Title, kind, template.HTML(page.TOC), template.HTML(page.Body)})
	if err != nil {
		s.logger.Warn("Failed to write reference page", "kind", kind, "name", entry.FullName, "error", err)
	}
}
