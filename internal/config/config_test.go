package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cool-spots/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Server.DefaultPageSize)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 30*time.Second, cfg.OpenData.RequestTimeout)
	assert.Equal(t,
		"https://opendata.paris.fr/api/explore/v2.1/catalog/datasets/fontaines-a-boire/exports/json",
		cfg.OpenData.FountainsURL,
	)
	assert.False(t, cfg.Worker.Enabled)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_PORT=9090\nCACHE_TTL=60\nLOG_LEVEL=debug\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "warn", cfg.Log.Level, "environment overrides the file")
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("CACHE_BACKEND", "memcached")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestConfig_Datasets(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	datasets := cfg.Datasets()
	require.Len(t, datasets, 3)
	for i, ds := range datasets {
		assert.Equal(t, domain.AllCategories[i], ds.Category)
	}
	assert.Equal(t, "ilots-de-fraicheur-espaces-verts-frais", datasets[1].ID)
	assert.Equal(t, "https://parisdata.opendatasoft.com/api/explore/v2.1/catalog/datasets", datasets[1].BaseURL)
	assert.Equal(t, "gid", datasets[2].IDField())
	assert.Equal(t, "identifiant", datasets[0].IDField())
}
