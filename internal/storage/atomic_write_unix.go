//go:build !windows

package storage

import "os"

// replaceFile renames from over to. POSIX rename replaces atomically.
func replaceFile(from, to string) error { return os.Rename(from, to) }
