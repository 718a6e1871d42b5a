package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/config"
	"github.com/KOUSHAMBHA15IT/emerald-shadow-notes/pkg/models"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), buf.String())
	return buf.String()
}

func TestCommandsAgainstFileBackend(t *testing.T) {
	dir := t.TempDir()
	base := []string{"--config", filepath.Join(dir, "missing.json"), "--data-dir", dir, "--backend", "file"}
	run := func(args ...string) string {
		return execute(t, append(append([]string{}, args...), base...)...)
	}

	assert.Contains(t, run("add", "--title", "Groceries", "--content", "milk"), "Created note")
	assert.Contains(t, run("add", "--title", "Work plan", "--content", "ship it"), "(Work plan)")

	out := run("list", "--search", "wor")
	assert.Contains(t, out, "Work plan")
	assert.NotContains(t, out, "Groceries")

	out = run("list", "--search", "", "--json")
	var notes []models.Note
	require.NoError(t, sonic.ConfigStd.Unmarshal([]byte(out), &notes))
	require.Len(t, notes, 2)
	assert.Equal(t, "Work plan", notes[0].Title)

	assert.Contains(t, run("rm", notes[0].ID), "Deleted note")
	assert.Contains(t, run("rm", "missing"), "No note with id missing")

	out = run("seed", "--count", "2")
	assert.Equal(t, 2, strings.Count(out, "Generated note with ID"))

	assert.Contains(t, run("backup"), "Backup written to")
	assert.Contains(t, run("version"), "notes version dev")
	assert.Contains(t, run("config"), `"backend": "file"`)
}

func TestConfigSaveRoundTrip(t *testing.T) {
	for _, name := range []string{"config.json", "config.toml", "config.yaml"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, name)

			out := execute(t, "config", "--save", "--config", path, "--backend", "bolt", "--data-dir", dir)
			assert.Contains(t, out, "Configuration saved to "+path)

			cfg, err := config.LoadFile(path)
			require.NoError(t, err)
			assert.Equal(t, config.BackendBolt, cfg.Backend)
			assert.Equal(t, dir, cfg.DataDir)

			out = execute(t, "config", "--save", "--config", path, "--backend", "bolt", "--data-dir", dir)
			assert.Contains(t, out, "Configuration saved to "+path)
		})
	}
}
