package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/config"
)

func testConfig(t *testing.T, backend string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Backend = backend
	cfg.DataDir = t.TempDir()
	cfg.Busy.Enabled = false
	return cfg
}

func TestNewWiresSessionAndHandler(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, testConfig(t, config.BackendMemory))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	session := a.NewSession()
	_, err = session.CreateNote(ctx)
	require.NoError(t, err)
	assert.Same(t, a.Gate(), session.Gate())

	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notes", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "New Note")

	a.StartWatching()
	a.OnReload(func() {})
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t, "tape")
	_, err := New(context.Background(), cfg)
	require.Error(t, err)
}

func TestRedisBackend(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cfg := testConfig(t, config.BackendRedis)
	cfg.Redis.Addr = mr.Addr()

	ctx := context.Background()
	a, err := New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	_, err = a.Notes().Create(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(cfg.Redis.Prefix+cfg.StorageKey))
}

func TestFileBackendWatchesForExternalChanges(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendFile)
	a, err := New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	a.StartWatching()
	var reloads atomic.Int32
	a.OnReload(func() { reloads.Add(1) })

	blob := `[{"id":"ext","title":"Synced","content":"","createdAt":"2024-01-01T00:00:00Z","updatedAt":"2024-01-01T00:00:00Z"}]`
	require.NoError(t, os.WriteFile(filepath.Join(cfg.DataDir, "notes.json"), []byte(blob), 0644))

	require.Eventually(t, func() bool { return reloads.Load() > 0 }, 2*time.Second, 10*time.Millisecond)
	_, err = a.Notes().Get("ext")
	assert.NoError(t, err)
}

func TestCreateBackup(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendFile)
	a, err := New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	_, err = a.Notes().Create(ctx)
	require.NoError(t, err)

	path, err := a.CreateBackup(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, cfg.DataDir, filepath.Dir(path))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}
