package types

import (
	"strings"
	"time"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/models"
)

const (
	// EmptyPreview stands in for a note without content
	EmptyPreview = "No content"

	previewRunes = 60
	dateLayout   = "Jan 2, 2006"
)

// NoteSummary is a list entry shared by the terminal UI and the web index
type NoteSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Preview string `json:"preview"`
	Updated string `json:"updated"`
}

// Preview returns the first line of content, shortened to fit a list row
func Preview(content string) string {
	content = strings.TrimSpace(content)
	if content == "" {
		return EmptyPreview
	}
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		content = strings.TrimSpace(content[:i])
	}
	runes := []rune(content)
	if len(runes) > previewRunes {
		return string(runes[:previewRunes-3]) + "..."
	}
	return content
}

// FormatDate renders a timestamp for display in local time
func FormatDate(t time.Time) string {
	return t.Local().Format(dateLayout)
}

// FormatDateTime renders a timestamp with minutes, for "Last updated" lines
func FormatDateTime(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 15:04")
}

// ConvertToSummary converts a note into its list entry
func ConvertToSummary(note models.Note) NoteSummary {
	return NoteSummary{
		ID:      note.ID,
		Title:   note.Title,
		Preview: Preview(note.Content),
		Updated: FormatDate(note.UpdatedAt),
	}
}

// ConvertToSummaries converts a slice of notes, never returning nil
func ConvertToSummaries(notes []models.Note) []NoteSummary {
	summaries := make([]NoteSummary, len(notes))
	for i, note := range notes {
		summaries[i] = ConvertToSummary(note)
	}
	return summaries
}
