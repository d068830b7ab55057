package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileIsEmpty(t *testing.T) {
	t.Setenv("ORGANIZER_CONFIG_DIR", t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, &Config{}, cfg)
}

func TestLoadConfig_AcceptsCommentsAndTrailingCommas(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ORGANIZER_CONFIG_DIR", dir)

	body := `{
		// where the data lives
		"dir": "/tmp/org",
		"backend": "sqlite",
		"format": "text", /* human output */
		"logLevel": "debug",
		"defaultColor": "#123456",
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(body), 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, &Config{
		Dir:          "/tmp/org",
		Backend:      "sqlite",
		Format:       "text",
		LogLevel:     "debug",
		DefaultColor: "#123456",
	}, cfg)
}

func TestLoadConfig_InvalidIsError(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ORGANIZER_CONFIG_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{"dir": `), 0o644))

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestSaveConfig_KeepsBackup(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ORGANIZER_CONFIG_DIR", dir)

	require.NoError(t, SaveConfig(&Config{Backend: "file"}))
	require.NoError(t, SaveConfig(&Config{Backend: "sqlite"}))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "sqlite", cfg.Backend)

	prev, err := os.ReadFile(filepath.Join(dir, "config.json.bak"))
	require.NoError(t, err)
	require.Contains(t, string(prev), `"file"`)
}

func TestConfig_Set(t *testing.T) {
	t.Parallel()

	var cfg Config
	require.NoError(t, cfg.Set("backend", " sqlite "))
	require.NoError(t, cfg.Set("defaultColor", "#abcdef"))
	require.NoError(t, cfg.Set("logLevel", "debug"))
	require.Equal(t, Config{Backend: "sqlite", LogLevel: "debug", DefaultColor: "#abcdef"}, cfg)

	require.NoError(t, cfg.Set("backend", ""))
	require.Empty(t, cfg.Backend)

	require.ErrorContains(t, cfg.Set("colour", "x"), "unknown config key")
}
