package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "data/pvoil_gasoline_prices_full.csv", cfg.Source.CSVPath)
	assert.Equal(t, "reports", cfg.Export.Dir)

	require.Len(t, cfg.Catalog, 4)
	assert.Equal(t, "Xăng RON 95-III", cfg.Catalog[0].Name)
	assert.Equal(t, "ron95", cfg.Catalog[0].Code)
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
logging:
  level: debug
source:
  csv_path: /tmp/prices.csv
catalog:
  - name: "Xăng RON 95-III"
    code: ron95
    color: "#EF4444"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/prices.csv", cfg.Source.CSVPath)
	// Unset fields still get defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	require.Len(t, cfg.Catalog, 1)
	assert.Equal(t, "ron95", cfg.Catalog[0].Code)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9090\n")
	t.Setenv("PVP_SERVER_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/config.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ValidationFailures(t *testing.T) {
	t.Run("bad log level", func(t *testing.T) {
		path := writeConfig(t, "logging:\n  level: loud\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("catalog entry without code", func(t *testing.T) {
		path := writeConfig(t, "catalog:\n  - name: \"Dầu KO\"\n")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("bad source url", func(t *testing.T) {
		path := writeConfig(t, "source:\n  url: not-a-url\n")
		_, err := Load(path)
		assert.Error(t, err)
	})
}
