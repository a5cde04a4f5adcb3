// Package config provides configuration management for eb.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aki/eb/internal/filemanager"
)

const (
	// AppDir is the directory name under the user config dir
	AppDir = "eb"
	// ConfigFile is the filename for the eb configuration
	ConfigFile = "config.yaml"
)

// ErrConfigExists is returned by Init when a file is already present
var ErrConfigExists = errors.New("configuration file already exists")

// Manager handles the eb configuration file
type Manager struct {
	configPath string
	files      *filemanager.Manager[Config]
}

// NewManager creates a manager for the file at configPath
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
		files:      filemanager.NewManager[Config](),
	}
}

// NewDefaultManager creates a manager for the per-user configuration file
func NewDefaultManager() (*Manager, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return NewManager(path), nil
}

// DefaultPath returns the per-user configuration file path,
// $XDG_CONFIG_HOME/eb/config.yaml on Linux
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, AppDir, ConfigFile), nil
}

// Load reads the configuration from disk. A missing file yields the defaults.
func (m *Manager) Load(ctx context.Context) (*Config, error) {
	if !m.Exists() {
		return DefaultConfig(), nil
	}

	if err := ValidateFile(m.configPath); err != nil {
		return nil, fmt.Errorf("invalid configuration %s: %w", m.configPath, err)
	}

	cfg, err := m.files.Read(ctx, m.configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Save writes the configuration to disk
func (m *Manager) Save(ctx context.Context, config *Config) error {
	if err := ValidateConfig(config); err != nil {
		return err
	}
	if err := m.files.Write(ctx, m.configPath, config); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Init writes the default configuration, refusing to replace an existing
// file unless force is set
func (m *Manager) Init(ctx context.Context, force bool) error {
	if m.Exists() && !force {
		return fmt.Errorf("%w: %s", ErrConfigExists, m.configPath)
	}
	return m.Save(ctx, DefaultConfig())
}

// Exists checks if the configuration file is present
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.configPath)
	return err == nil
}

// Path returns the configuration file path
func (m *Manager) Path() string {
	return m.configPath
}
