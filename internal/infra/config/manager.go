package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/runoshun/taskpro/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages configuration files.
type Manager struct {
	globalConfDir string // Path to global config directory (e.g., ~/.config/taskpro)
	filePath      string // Explicit config file (--config), optional
}

// NewManager creates a new Manager.
func NewManager(filePath string) *Manager {
	return &Manager{
		globalConfDir: defaultGlobalConfigDir(),
		filePath:      filePath,
	}
}

// NewManagerWithGlobalDir creates a new Manager with a custom global config directory.
// This is useful for testing.
func NewManagerWithGlobalDir(filePath, globalConfDir string) *Manager {
	return &Manager{
		globalConfDir: globalConfDir,
		filePath:      filePath,
	}
}

// GetGlobalConfigInfo returns information about the global config file.
func (m *Manager) GetGlobalConfigInfo() domain.ConfigInfo {
	if m.globalConfDir == "" {
		return domain.ConfigInfo{}
	}
	return m.getConfigInfo(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// GetFileConfigInfo returns information about the --config file.
func (m *Manager) GetFileConfigInfo() domain.ConfigInfo {
	if m.filePath == "" {
		return domain.ConfigInfo{}
	}
	return m.getConfigInfo(m.filePath)
}

// getConfigInfo reads a config file and returns its info.
func (m *Manager) getConfigInfo(path string) domain.ConfigInfo {
	content, err := os.ReadFile(path)
	if err != nil {
		return domain.ConfigInfo{Path: path}
	}
	return domain.ConfigInfo{
		Path:    path,
		Content: string(content),
		Exists:  true,
	}
}

// InitGlobalConfig creates the global config file from the default template.
func (m *Manager) InitGlobalConfig() error {
	if m.globalConfDir == "" {
		return errors.New("global config directory not available")
	}
	return m.initConfig(filepath.Join(m.globalConfDir, domain.ConfigFileName))
}

// InitFileConfig creates the --config file from the default template.
func (m *Manager) InitFileConfig() error {
	if m.filePath == "" {
		return errors.New("no config file path given")
	}
	return m.initConfig(m.filePath)
}

// initConfig creates a config file with default template.
func (m *Manager) initConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return domain.ErrConfigExists
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	content := domain.RenderConfigTemplate(domain.NewDefaultConfig())
	return os.WriteFile(path, []byte(content), 0600)
}
