package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/models"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/types"
)

//go:embed templates/index.html
var templateFS embed.FS

var (
	codeBlockRegex  = regexp.MustCompile("(?s)```([\\s\\S]*?)```")
	boldRegex       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicRegex     = regexp.MustCompile(`\*([^*\n]+)\*`)
	inlineCodeRegex = regexp.MustCompile("`([^`\n]+)`")
	headingRegex    = regexp.MustCompile(`(?m)^# (.+)$`)
)

// formatContent renders note content with a handful of markdown rules
func formatContent(s string) template.HTML {
	if s == "" {
		return template.HTML(types.EmptyPreview)
	}

	s = template.HTMLEscapeString(s)

	// Code blocks go behind placeholders so other rules leave them alone
	blocks := codeBlockRegex.FindAllStringSubmatch(s, -1)
	for i, block := range blocks {
		s = strings.Replace(s, block[0], fmt.Sprintf("__CODEBLOCK_%d__", i), 1)
	}

	s = headingRegex.ReplaceAllString(s, "<strong class=\"heading\">$1</strong>")
	s = strings.ReplaceAll(s, "\n", "<br>")
	s = boldRegex.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRegex.ReplaceAllString(s, "<em>$1</em>")
	s = inlineCodeRegex.ReplaceAllString(s, "<code>$1</code>")

	for i, block := range blocks {
		s = strings.Replace(s, fmt.Sprintf("__CODEBLOCK_%d__", i),
			"<pre><code>"+strings.TrimSpace(block[1])+"</code></pre>", 1)
	}

	return template.HTML(s)
}

var indexTemplate = template.Must(template.New("index.html").
	Funcs(template.FuncMap{
		"formatContent":  formatContent,
		"formatDateTime": types.FormatDateTime,
	}).
	ParseFS(templateFS, "templates/index.html"))

// WebHandlers contains handlers for the read-only web interface
type WebHandlers struct {
	svc NoteService
}

// NewWebHandlers creates a new web handlers instance
func NewWebHandlers(svc NoteService) *WebHandlers {
	return &WebHandlers{svc: svc}
}

// IndexHandler serves the main page
func (h *WebHandlers) IndexHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	notes := h.svc.Search(query)

	data := struct {
		Notes []models.Note
		Query string
	}{
		Notes: notes,
		Query: query,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		http.Error(w, "Template execution error", http.StatusInternalServerError)
		log.WithError(err).Error("Template execution error")
	}
}
