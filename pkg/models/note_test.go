package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteMatches(t *testing.T) {
	note := Note{Title: "Work plan", Content: "Quarterly GOALS"}

	tests := []struct {
		term string
		want bool
	}{
		{"", true},
		{"wor", true},
		{"WORK", true},
		{"goals", true},
		{"plan q", false},
		{"groceries", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, note.Matches(tt.term), "term %q", tt.term)
	}
}

func TestTitleOrUntitled(t *testing.T) {
	assert.Equal(t, UntitledTitle, TitleOrUntitled(""))
	assert.Equal(t, "   ", TitleOrUntitled("   "), "whitespace is not trimmed")
	assert.Equal(t, "Groceries", TitleOrUntitled("Groceries"))
}

func TestCloneIsIndependent(t *testing.T) {
	note := &Note{ID: "a", Title: "one"}
	c := note.Clone()
	c.Title = "two"
	assert.Equal(t, "one", note.Title)
}
