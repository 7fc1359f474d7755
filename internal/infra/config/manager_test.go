package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/taskpro/internal/domain"
)

func TestManager_GetGlobalConfigInfo(t *testing.T) {
	t.Run("returns info when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		configContent := "[log]\nlevel = \"debug\""
		err := os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte(configContent), 0644)
		require.NoError(t, err)

		manager := NewManagerWithGlobalDir("", globalDir)
		info := manager.GetGlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.Equal(t, configContent, info.Content)
		assert.True(t, info.Exists)
	})

	t.Run("returns info when file does not exist", func(t *testing.T) {
		globalDir := t.TempDir()

		manager := NewManagerWithGlobalDir("", globalDir)
		info := manager.GetGlobalConfigInfo()

		assert.Equal(t, filepath.Join(globalDir, domain.ConfigFileName), info.Path)
		assert.Empty(t, info.Content)
		assert.False(t, info.Exists)
	})

	t.Run("returns empty info when global dir is empty", func(t *testing.T) {
		manager := NewManagerWithGlobalDir("", "")
		info := manager.GetGlobalConfigInfo()

		assert.Empty(t, info.Path)
		assert.False(t, info.Exists)
	})
}

func TestManager_GetFileConfigInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ui]\nlocale = \"en\"\n"), 0644))

	info := NewManagerWithGlobalDir(path, "").GetFileConfigInfo()
	assert.True(t, info.Exists)
	assert.Equal(t, path, info.Path)

	info = NewManagerWithGlobalDir("", "").GetFileConfigInfo()
	assert.False(t, info.Exists)
	assert.Empty(t, info.Path)
}

func TestManager_InitGlobalConfig(t *testing.T) {
	t.Run("creates config file and directory", func(t *testing.T) {
		globalDir := filepath.Join(t.TempDir(), "nested", "taskpro")
		manager := NewManagerWithGlobalDir("", globalDir)

		err := manager.InitGlobalConfig()
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(globalDir, domain.ConfigFileName))
		require.NoError(t, err)
		assert.Contains(t, string(content), "[api]")
		assert.Contains(t, string(content), `# base_url = "/api"`)
	})

	t.Run("returns error when file exists", func(t *testing.T) {
		globalDir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(globalDir, domain.ConfigFileName), []byte("x"), 0644))

		err := NewManagerWithGlobalDir("", globalDir).InitGlobalConfig()

		assert.ErrorIs(t, err, domain.ErrConfigExists)
	})

	t.Run("returns error without global dir", func(t *testing.T) {
		err := NewManagerWithGlobalDir("", "").InitGlobalConfig()
		assert.Error(t, err)
	})
}

func TestManager_InitFileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskpro.toml")
	manager := NewManagerWithGlobalDir(path, "")

	require.NoError(t, manager.InitFileConfig())
	assert.True(t, manager.GetFileConfigInfo().Exists)

	// The written template loads back as the defaults.
	cfg, err := NewLoaderWithGlobalDir(path, "").WithEnv("", noEnv).Load()
	require.NoError(t, err)
	assert.Equal(t, domain.NewDefaultConfig(), cfg)

	assert.ErrorIs(t, manager.InitFileConfig(), domain.ErrConfigExists)
}
