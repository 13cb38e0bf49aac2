package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// VaultConfig holds user-tunable vault settings, loaded from quill.yaml at
// the vault root. All fields are optional; zero values fall back to defaults.
type VaultConfig struct {
	// DefaultTitle overrides the placeholder title for untitled notes.
	DefaultTitle string `yaml:"default_title"`

	// Store overrides the directory the note collection is persisted in,
	// relative to the vault root.
	Store string `yaml:"store"`
}

// LoadVaultConfig reads quill.yaml from dir. A missing file yields the zero
// config without error; a malformed file is an error, since silently
// ignoring explicit settings would be worse than failing.
func LoadVaultConfig(dir string) (VaultConfig, error) {
	var cfg VaultConfig

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid %s: %w", ConfigFileName, err)
	}
	return cfg, nil
}

// StoreDir resolves the effective store directory for a vault root.
func (c VaultConfig) StoreDir(root string) string {
	if c.Store == "" {
		return root
	}
	if filepath.IsAbs(c.Store) {
		return c.Store
	}
	return filepath.Join(root, c.Store)
}
