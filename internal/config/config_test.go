package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFresh(t *testing.T) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	return Load()
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadFresh(t)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "", cfg.Server.BaseURL)
	assert.Equal(t, 20, cfg.Server.RateLimitRPS)
	assert.Equal(t, filepath.Join(os.TempDir(), "docpress"), cfg.Storage.Path)
	assert.Equal(t, int64(26214400), cfg.Storage.MaxArtifactSize)
	assert.Equal(t, 1000, cfg.Storage.MaxArtifacts)
	assert.Equal(t, int64(536870912), cfg.Storage.MaxTotalBytes)
	assert.Equal(t, 30, cfg.Render.TimeoutSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE_PATH", "/var/lib/docpress")
	t.Setenv("BASE_URL", "http://files.example.com")

	cfg, err := loadFresh(t)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/docpress", cfg.Storage.Path)
	assert.Equal(t, "http://files.example.com", cfg.Server.BaseURL)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[server]
port = 9090
base_url = "http://127.0.0.1:9090"

[storage]
max_artifacts = 5

[logging]
format = "text"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))
	t.Chdir(dir)

	cfg, err := loadFresh(t)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "http://127.0.0.1:9090", cfg.Server.BaseURL)
	assert.Equal(t, 5, cfg.Storage.MaxArtifacts)
	assert.Equal(t, "text", cfg.Logging.Format)
	// Untouched keys keep their defaults
	assert.Equal(t, 30, cfg.Render.TimeoutSeconds)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "non-positive artifact size",
			content: "[storage]\nmax_artifact_size = 0\n",
		},
		{
			name:    "non-positive artifact count",
			content: "[storage]\nmax_artifacts = -1\n",
		},
		{
			name:    "total below single artifact",
			content: "[storage]\nmax_artifact_size = 100\nmax_total_bytes = 50\n",
		},
		{
			name:    "non-positive render timeout",
			content: "[render]\ntimeout_seconds = 0\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(tt.content), 0o644))
			t.Chdir(dir)

			_, err := loadFresh(t)
			assert.Error(t, err)
		})
	}
}
