package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the vault configuration file looked for at the root.
const ConfigFileName = "quill.yaml"

// FindRoot recursively looks upwards for a vault root indicator.
// Indicators are: a notes.json store file or a quill.yaml config file.
// If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, "notes.json") || hasFile(dir, ConfigFileName) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("vault root not found")
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
