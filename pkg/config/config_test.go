package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/errors"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "notes", cfg.StorageKey)
	assert.Equal(t, 2, cfg.Splash.Step)
	assert.Equal(t, 60, cfg.Splash.IntervalMS)
	assert.Equal(t, 200, cfg.Splash.SettleMS)
}

func TestLoadFileFormats(t *testing.T) {
	files := map[string]string{
		"config.json": `{"backend":"bolt","dataDir":"/tmp/n","storageKey":"mine","busy":{"enabled":true,"step":50,"intervalMs":10}}`,
		"config.toml": "backend = \"bolt\"\ndata_dir = \"/tmp/n\"\nstorage_key = \"mine\"\n[busy]\nenabled = true\nstep = 50\ninterval_ms = 10\n",
		"config.yaml": "backend: bolt\ndataDir: /tmp/n\nstorageKey: mine\nbusy:\n  enabled: true\n  step: 50\n  intervalMs: 10\n",
	}

	for name, body := range files {
		t.Run(name, func(t *testing.T) {
			cfg, err := LoadFile(writeFile(t, name, body))
			require.NoError(t, err)
			assert.Equal(t, BackendBolt, cfg.Backend)
			assert.Equal(t, "/tmp/n", cfg.DataDir)
			assert.Equal(t, "mine", cfg.StorageKey)
			assert.Equal(t, 50, cfg.Busy.Step)
			assert.Equal(t, 10, cfg.Busy.IntervalMS)
			// untouched values keep their defaults
			assert.Equal(t, defaultListenAddr, cfg.ListenAddr)
		})
	}
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	_, err := LoadFile(writeFile(t, "c.json", `{"backend":"sqlite"}`))
	assert.ErrorIs(t, err, apperrors.ErrUnknownBackend)

	_, err = LoadFile(writeFile(t, "c.json", `{"storageKey":"../x"}`))
	require.Error(t, err)

	_, err = LoadFile(writeFile(t, "c.json", `{"busy":{"enabled":true,"step":0}}`))
	require.Error(t, err)

	_, err = LoadFile(writeFile(t, "c.json", `{not json`))
	assert.ErrorIs(t, err, apperrors.ErrConfigLoadFailed)
}

func TestSaveFileRoundTrip(t *testing.T) {
	for _, name := range []string{"config", "config.json", "config.toml", "config.yaml", "config.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", name)
			cfg := Default()
			cfg.Backend = BackendMemory
			cfg.Watch = false
			cfg.Redis.Prefix = "emerald:"
			cfg.Busy.Step = 25
			require.NoError(t, cfg.SaveFile(path))

			loaded, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)

			require.NoError(t, loaded.SaveFile(path))
			again, err := LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, again)
		})
	}
}
