package storage

import (
	"context"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsOnExternalWrite(t *testing.T) {
	ctx := context.Background()
	slots, err := NewFileSlots(t.TempDir())
	require.NoError(t, err)

	store := NewNoteStore(slots, "notes")
	require.NoError(t, store.Load(ctx))

	w, err := NewWatcher(store, slots, 20*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	var reloads atomic.Int32
	w.OnReload(func() { reloads.Add(1) })

	// Own writes do not trigger a reload
	_, err = store.Create(ctx)
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), reloads.Load())

	// Make sure the external write gets a later mod time than ours
	time.Sleep(20 * time.Millisecond)
	blob := `[{"id":"ext","title":"From elsewhere","content":"","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`
	require.NoError(t, os.WriteFile(slots.Path("notes"), []byte(blob), 0644))

	require.Eventually(t, func() bool { return reloads.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	note, ok := store.Get("ext")
	require.True(t, ok)
	assert.Equal(t, "From elsewhere", note.Title)
	assert.Equal(t, 1, store.Len())
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	slots, err := NewFileSlots(t.TempDir())
	require.NoError(t, err)
	store := NewNoteStore(slots, "notes")

	w, err := NewWatcher(store, slots, 10*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	var reloads atomic.Int32
	w.OnReload(func() { reloads.Add(1) })

	require.NoError(t, os.WriteFile(slots.Path("other"), []byte(`[]`), 0644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(0), reloads.Load())
}
