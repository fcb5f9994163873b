package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joeycumines/uat-helper/internal/storage"
)

// SetKeyInFile updates or adds a global option in the config file, keeping
// comments and command sections intact. A new key is inserted before the
// first section header, or appended when there is none.
func SetKeyInFile(path, key, value string) error {
	return editGlobal(path, key, func(lines []string, at int) []string {
		if at >= 0 {
			lines[at] = optionLine(key, value)
			return lines
		}
		return insertGlobal(lines, optionLine(key, value))
	})
}

// UnsetKeyInFile removes a global option from the config file. Removing a
// key that is not present is not an error.
func UnsetKeyInFile(path, key string) error {
	return editGlobal(path, key, func(lines []string, at int) []string {
		if at < 0 {
			return lines
		}
		return append(lines[:at], lines[at+1:]...)
	})
}

func optionLine(key, value string) string {
	if value == "" {
		return key
	}
	return key + " " + value
}

// editGlobal reads path, finds key in the global section (at is -1 when
// absent) and writes back the lines returned by edit.
func editGlobal(path, key string, edit func(lines []string, at int) []string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config file: %w", err)
	}

	var lines []string
	if len(data) > 0 {
		lines = strings.Split(string(data), "\n")
	}

	at := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if isSection(trimmed) {
			break
		}
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if name, _, _ := strings.Cut(trimmed, " "); name == key {
			at = i
			break
		}
	}

	lines = edit(lines, at)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	return storage.AtomicWriteFile(path, []byte(strings.Join(lines, "\n")), 0644)
}

func isSection(line string) bool {
	return strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]")
}

func insertGlobal(lines []string, line string) []string {
	for i, l := range lines {
		if isSection(strings.TrimSpace(l)) {
			return append(lines[:i], append([]string{line}, lines[i:]...)...)
		}
	}
	// keep a trailing newline trailing
	if n := len(lines); n > 0 && lines[n-1] == "" {
		return append(lines[:n-1], line, "")
	}
	return append(lines, line)
}
