package storage

import (
	"archive/zip"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupArchivesSlots(t *testing.T) {
	ctx := context.Background()
	slots := NewMemorySlots()
	require.NoError(t, slots.Set(ctx, "notes", []byte(`[]`)))

	dir := t.TempDir()
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	path, err := Backup(ctx, slots, []string{"notes", "notes" + CorruptedSuffix}, dir, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "backup-20240506-070809.zip"), path)

	r, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	require.Len(t, r.File, 1, "missing slots are skipped")
	assert.Equal(t, "notes/notes.json", r.File[0].Name)

	f, err := r.File[0].Open()
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestBackupFailureLeavesNoArchive(t *testing.T) {
	ctx := context.Background()
	slots := &failingSlots{MemorySlots: NewMemorySlots(), failReads: true}
	dir := t.TempDir()

	path, err := Backup(ctx, slots, []string{"notes"}, dir, time.Now())
	require.Error(t, err)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
