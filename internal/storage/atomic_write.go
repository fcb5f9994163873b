package storage

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

const tempPattern = ".tmp-uathelper-*"

// testHookCrashBeforeRename runs after the temp file is complete and before
// it replaces the target.
var testHookCrashBeforeRename func()

// RenameError is returned when the finished temp file could not replace
// the target. The temp file has been removed by the time it is returned.
type RenameError struct {
	Err      error
	tempPath string
}

func (e RenameError) Error() string    { return e.Err.Error() }
func (e RenameError) TempPath() string { return e.tempPath }
func (e RenameError) Unwrap() error    { return e.Err }

// AtomicWriteFile replaces filename with data. The data goes to a synced
// temp file beside the target first, so a reader sees the old file or the
// new one and never a mix.
func AtomicWriteFile(filename string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := writeTemp(dir, data, perm)
	if err != nil {
		return err
	}
	placed := false
	defer func() {
		if placed {
			return
		}
		if rmErr := os.Remove(tmp); rmErr != nil && !os.IsNotExist(rmErr) {
			slog.Warn("failed to remove temporary file", "path", tmp, "error", rmErr)
		}
	}()

	if testHookCrashBeforeRename != nil {
		testHookCrashBeforeRename()
	}
	if err := replaceFile(tmp, filename); err != nil {
		return RenameError{Err: err, tempPath: tmp}
	}
	placed = true
	return nil
}

// writeTemp writes data to a new temp file in dir and returns its path.
// On error nothing is left behind.
func writeTemp(dir string, data []byte, perm os.FileMode) (string, error) {
	f, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	name := f.Name()
	fail := func(format string, err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(name)
		return "", fmt.Errorf(format, err)
	}
	if _, err := f.Write(data); err != nil {
		return fail("failed to write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fail("failed to sync temp file: %w", err)
	}
	if err := f.Chmod(perm); err != nil {
		return fail("failed to chmod temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return name, nil
}
