package settings

import "strings"

// NormalizePath trims surrounding spaces and converts backslashes to forward
// slashes.
func NormalizePath(p string) string {
	return strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
}

// SetRootPath stores the engine root directory in normalized form. The
// value is used as a prefix of the batch file path, so it should end in a
// slash.
func (s *Settings) SetRootPath(p string) { s.RootPath = NormalizePath(p) }

// SetProjectPath stores the .uproject path in normalized form.
func (s *Settings) SetProjectPath(p string) { s.ProjectPath = NormalizePath(p) }
