package mcp

import (
	"html/template"
	"net/http"

	"github.com/bull/demosdk-docs-mcp/internal/docs"
)

var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>DemoSDK Docs MCP Server</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; background: #0f172a; color: #e2e8f0; margin: 0; }
  main { max-width: 760px; margin: 3rem auto; padding: 0 1.5rem; }
  h2 { font-size: 0.8rem; text-transform: uppercase; letter-spacing: 0.1em; color: #64748b; margin-top: 2rem; }
  a { color: #38bdf8; text-decoration: none; }
  pre { background: #1e293b; border: 1px solid #334155; border-radius: 8px; padding: 1rem; overflow-x: auto; }
  table { border-collapse: collapse; }
  td { padding: 0.2rem 1.5rem 0.2rem 0; }
  ul.names { columns: 2; padding-left: 1rem; }
  .muted { color: #94a3b8; }
</style>
</head>
<body>
<main>
<h1>DemoSDK Docs MCP Server</h1>
<p class="muted">Search the <a href="https://github.com/kynesyslabs/sdk">DemoSDK</a> API reference over the Model Context Protocol.</p>

<h2>Client configuration</h2>
<pre><code>{"mcpServers": {"demosdk-docs": {"type": "http", "url": "http://localhost:8080/mcp"}}}</code></pre>

<h2>Endpoints</h2>
<table>
<tr><td><a href="/mcp">/mcp</a></td><td>Streamable HTTP transport</td></tr>
<tr><td><a href="/health">/health</a></td><td>Index health{{if .Semantic}} (semantic search enabled){{end}}</td></tr>
<tr><td>/reference/{kind}/{name}</td><td>Rendered reference pages</td></tr>
</table>

<h2>Index</h2>
{{if .Stats.Total}}
<p>{{.Stats.Classes}} classes, {{.Stats.Interfaces}} interfaces, {{.Stats.Functions}} functions,
{{.Stats.Enums}} enums, {{.Stats.Types}} types, {{.Stats.Variables}} variables.</p>
{{with .Classes}}<h2>Classes</h2>
<ul class="names">{{range .}}<li><a href="/reference/class/{{.Name}}">{{.Name}}</a></li>{{end}}</ul>{{end}}
{{with .Interfaces}}<h2>Interfaces</h2>
<ul class="names">{{range .}}<li><a href="/reference/interface/{{.Name}}">{{.Name}}</a></li>{{end}}</ul>{{end}}
{{else}}
<p class="muted">No documentation loaded yet.</p>
{{end}}
</main>
</body>
</html>`))

// handleLanding serves the index page at / with the loaded documentation's counts
// and links to the class and interface reference pages.
func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	// Never triggers a build; before init this shows an empty index.
	eng := s.library.Engine()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := landingTemplate.Execute(w, struct {
		Stats      docs.Stats
		Classes    []docs.Summary
		Interfaces []docs.Summary
		Semantic   bool
	}{eng.Stats(), eng.ListClasses(), eng.ListInterfaces(), s.semantic != nil})
	if err != nil {
		s.logger.Warn("Failed to write landing page", "error", err)
	}
}
