package types

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/models"
)

func TestPreview(t *testing.T) {
	assert.Equal(t, EmptyPreview, Preview(""))
	assert.Equal(t, EmptyPreview, Preview("  \n "))
	assert.Equal(t, "first line", Preview("first line\nsecond"))

	long := strings.Repeat("é", 100)
	p := Preview(long)
	assert.Equal(t, previewRunes, len([]rune(p)))
	assert.True(t, strings.HasSuffix(p, "..."))
}

func TestConvertToSummaries(t *testing.T) {
	assert.NotNil(t, ConvertToSummaries(nil))

	when := time.Date(2024, 3, 1, 12, 0, 0, 0, time.Local)
	got := ConvertToSummaries([]models.Note{{ID: "a", Title: "Groceries", UpdatedAt: when}})
	assert.Equal(t, []NoteSummary{{ID: "a", Title: "Groceries", Preview: EmptyPreview, Updated: "Mar 1, 2024"}}, got)
}
