package tui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamourstyles "github.com/charmbracelet/glamour/styles"
)

type rendererKey struct {
	style string
	width int
}

var (
	rendererMu sync.Mutex
	renderers  = map[rendererKey]*glamour.TermRenderer{}
)

func markdownStyle(dark bool) string {
	if dark {
		return glamourstyles.DarkStyle
	}
	return glamourstyles.LightStyle
}

func getRenderer(style string, width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()

	key := rendererKey{style: style, width: width}
	if r, ok := renderers[key]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderers[key] = r
	return r
}

// renderMarkdown falls back to the raw text when rendering fails
func renderMarkdown(input, style string, width int) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := getRenderer(style, width)
	if r == nil {
		return input
	}
	out, err := r.Render(input)
	if err != nil {
		return input
	}
	return strings.Trim(out, "\n")
}
