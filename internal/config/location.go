package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvConfigPath overrides the location of the tool options file.
const EnvConfigPath = "UATHELPER_CONFIG"

// GetConfigPath returns $UATHELPER_CONFIG, or .uathelper/config under the
// user's home directory.
func GetConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return filepath.Clean(p), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate the options file: %w", err)
	}
	return filepath.Join(home, ".uathelper", "config"), nil
}
