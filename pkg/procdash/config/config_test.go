package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, SourceFile, cfg.Source.Kind)
	assert.Equal(t, "data.xlsx", cfg.Source.Path)
	assert.Equal(t, 60*time.Second, cfg.Source.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 3, cfg.Source.Retry.Attempts)
	assert.Equal(t, 500*time.Millisecond, cfg.Source.Retry.Backoff)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "#222831", cfg.Theme.Background)
	assert.Len(t, cfg.Theme.Palette, 5)

	theme, err := cfg.BuildTheme()
	require.NoError(t, err)
	assert.Equal(t, "#5470c6", theme.Palette()[0])
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "procdash.yaml", `
source:
  kind: HTTP
  url: https://bucket.example.com/procurement/latest.xlsx
  poll_interval: 5m
  retry:
    attempts: 5
    backoff: 2s
server:
  addr: 127.0.0.1:9000
log:
  level: DEBUG
theme:
  palette: ["#111111", "#222222"]
  background: "#000000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SourceHTTP, cfg.Source.Kind)
	assert.Equal(t, "https://bucket.example.com/procurement/latest.xlsx", cfg.Source.URL)
	assert.Equal(t, 5*time.Minute, cfg.Source.PollInterval)
	assert.Equal(t, 5, cfg.Source.Retry.Attempts)
	assert.Equal(t, 2*time.Second, cfg.Source.Retry.Backoff)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"#111111", "#222222"}, cfg.Theme.Palette)
	assert.Equal(t, "#000000", cfg.Theme.Background)
	assert.Equal(t, "#fff", cfg.Theme.Text)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PROCDASH_SOURCE_PATH", "/srv/data/procurement.xlsx")
	t.Setenv("PROCDASH_SERVER_ADDR", ":9999")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/data/procurement.xlsx", cfg.Source.Path)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"unknown kind", "source:\n  kind: ftp\n", `unknown source.kind "ftp"`},
		{"http without url", "source:\n  kind: http\n", "source.url is required"},
		{"bad url", "source:\n  kind: http\n  url: s3://bucket/key\n", "must be an http(s) URL"},
		{"zero interval", "source:\n  poll_interval: 0s\n", "poll_interval must be positive"},
		{"no attempts", "source:\n  retry:\n    attempts: 0\n", "attempts must be at least 1"},
		{"blank theme color", "theme:\n  grid: \" \"\n", "invalid theme"},
		{"unknown log level", "log:\n  level: loud\n", `invalid log.level "loud"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, "c.yaml", tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file failed")
}
