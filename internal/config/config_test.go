package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv neutralise les variables ANIME_* éventuellement présentes dans
// l'environnement du runner.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range envMappings {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
	t.Setenv(ConfigPathEnvVar, "")
	require.NoError(t, os.Unsetenv(ConfigPathEnvVar))
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
	assert.Equal(t, "assets/anime.json", cfg.Dataset.Path)
	assert.Equal(t, "data", cfg.Dataset.Selector)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Empty(t, cfg.CORS.AllowedOrigins)
	assert.Zero(t, cfg.RateLimit.Requests)
	assert.Equal(t, 16, cfg.Dataset.MaxConcurrentLoads)
}

func TestLoad_EnvOverridesDatasetPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANIME_DATASET_PATH", "testdata/anime_test.json")
	t.Setenv("ANIME_REQUEST_TIMEOUT", "5s")
	t.Setenv("ANIME_CORS_ORIGINS", "http://a.example, http://b.example,")
	t.Setenv("ANIME_RATE_LIMIT_REQUESTS", "20")
	t.Setenv("ANIME_DATASET_MAX_LOADS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "testdata/anime_test.json", cfg.Dataset.Path)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 20, cfg.RateLimit.Requests)
	assert.Equal(t, 4, cfg.Dataset.MaxConcurrentLoads)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "anime-api.yaml")
	yaml := []byte("server:\n  addr: 0.0.0.0:9000\ndataset:\n  path: /srv/anime.json\n  selector: catalog.items\nlog:\n  format: console\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o644))

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("ANIME_DATASET_PATH", "/override.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, "catalog.items", cfg.Dataset.Selector)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "/override.json", cfg.Dataset.Path, "env must win over the file")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Dataset.Path = " "
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dataset.path is required")
	assert.Contains(t, err.Error(), `unknown format "xml"`)

	cfg = Default()
	cfg.RateLimit.Requests = 10
	cfg.RateLimit.Window = 0
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Dataset.MaxConcurrentLoads = -1
	require.Error(t, cfg.Validate())
}
