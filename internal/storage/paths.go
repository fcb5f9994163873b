package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// defaultDirectory is a variable so tests can redirect it.
var defaultDirectory = DefaultDirectory

// DefaultDirectory returns {UserConfigDir}/uathelper, where configuration
// files live when no directory is configured.
func DefaultDirectory() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "uathelper"), nil
}

// ResolveDirectory returns dir if set, otherwise the default directory.
func ResolveDirectory(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return defaultDirectory()
}
