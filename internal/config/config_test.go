package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.True(t, cfg.ArchiveEnabled)
	assert.Empty(t, cfg.APIKey)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OLIVETTI_API_KEY", "sk-test")
	t.Setenv("OLIVETTI_MODEL", "gpt-4o")
	t.Setenv("OLIVETTI_DATA_DIR", "/tmp/olivetti-test")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.APIKey)
	assert.Equal(t, "gpt-4o", cfg.Model)
	assert.Equal(t, "/tmp/olivetti-test", cfg.DataDir)
}

func TestPaths(t *testing.T) {
	cfg := &Config{DataDir: "/data"}

	assert.Equal(t, filepath.Join("/data", "olivetti_state.json"), cfg.StatePath())
	assert.Equal(t, filepath.Join("/data", "archive.db"), cfg.ArchivePath())
	assert.Equal(t, filepath.Join("/data", "passages.idx"), cfg.PassageIndexPath())
}
