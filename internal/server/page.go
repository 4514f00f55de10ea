package server

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/stemd-dev/stemd/internal/domain"
)

//go:embed index.html.tmpl
var pageFS embed.FS

var pageTmpl = template.Must(template.ParseFS(pageFS, "index.html.tmpl"))

var formDecoder = schema.NewDecoder()

type pageData struct {
	Request domain.Request
	Output  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, pageData{Request: s.defaults.Apply(domain.Request{})})
}

// handleRunForm is the Run button: decode the form, invoke, re-render
// the page with the result text. Every failure comes back as text in the
// output box; nothing here takes the server down.
func (s *Server) handleRunForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, pageData{
			Request: s.defaults.Apply(domain.Request{}),
			Output:  "configuration error: " + err.Error(),
		})
		return
	}

	var req domain.Request
	if err := formDecoder.Decode(&req, r.PostForm); err != nil {
		// Unknown form keys land here rather than being dropped.
		s.renderPage(w, pageData{
			Request: s.defaults.Apply(domain.Request{}),
			Output:  "configuration error: " + err.Error(),
		})
		return
	}

	resp, err := s.run(r.Context(), req)
	output := resp.Output
	if err != nil {
		output = err.Error()
	}
	s.renderPage(w, pageData{Request: s.defaults.Apply(req), Output: output})
}

func (s *Server) renderPage(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTmpl.Execute(w, data); err != nil {
		slog.Error("error rendering page", "error", err)
	}
}
