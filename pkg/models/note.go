package models

import (
	"strings"
	"time"
)

const (
	// NewNoteTitle is the title every freshly created note starts with
	NewNoteTitle = "New Note"
	// UntitledTitle replaces an empty title at save time
	UntitledTitle = "Untitled"
)

// Note represents a single user-authored note
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns an independent copy of the note
func (n *Note) Clone() Note {
	return *n
}

// Matches reports whether the term is contained in the title or the content,
// ignoring case. The empty term matches every note.
func (n *Note) Matches(term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(n.Title), term) ||
		strings.Contains(strings.ToLower(n.Content), term)
}

// TitleOrUntitled applies the save-time title rule: only the empty string is replaced.
func TitleOrUntitled(title string) string {
	if title == "" {
		return UntitledTitle
	}
	return title
}
