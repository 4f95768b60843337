package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "contentkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, "content_root: ./site/content\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "./site/content", cfg.ContentRoot)
	require.Equal(t, "./contentkit.db", cfg.Index.Path)
	require.Equal(t, "text", cfg.Lint.Format)
	require.Equal(t, 2*time.Second, cfg.Watch.Debounce.Std())
	require.Equal(t, time.Hour, cfg.Watch.FullRevalidateEvery.Std())
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `content_root: ./content
index:
  path: /var/lib/contentkit/index.db
lint:
  quiet: true
  format: json
watch:
  debounce: 500ms
  full_revalidate_every: 30m
  metrics_listen: ":9108"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Lint.Quiet)
	require.Equal(t, "json", cfg.Lint.Format)
	require.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce.Std())
	require.Equal(t, 30*time.Minute, cfg.Watch.FullRevalidateEvery.Std())
	require.Equal(t, ":9108", cfg.Watch.MetricsListen)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "content_root: ./content\n")
	t.Setenv("CONTENTKIT_CONTENT_ROOT", "/srv/content")
	t.Setenv("CONTENTKIT_INDEX_PATH", "/srv/index.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/srv/content", cfg.ContentRoot)
	require.Equal(t, "/srv/index.db", cfg.Index.Path)
}

func TestLoad_RejectsUnknownFormat(t *testing.T) {
	path := writeConfig(t, "lint:\n  format: xml\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestWriteDefault_RefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contentkit.yaml")

	require.NoError(t, WriteDefault(path, false))
	require.Error(t, WriteDefault(path, false))
	require.NoError(t, WriteDefault(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
}
