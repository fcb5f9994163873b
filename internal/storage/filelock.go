package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var (
	// ErrWouldBlock signals that a non-blocking lock attempt failed because
	// another process holds the lock.
	ErrWouldBlock = errors.New("file lock would block")

	// ErrLocked is returned by writes when the target file is locked by
	// another process.
	ErrLocked = errors.New("config file is locked by another process")
)

// acquireFileLock creates path and takes an exclusive non-blocking lock on
// it. Tests replace it.
var acquireFileLock = func(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

// releaseFileLock unlocks, closes and removes the lock file.
func releaseFileLock(f *os.File) error {
	if f == nil {
		return nil
	}
	errUnlock := unlockFile(f)
	errClose := f.Close()
	errRemove := os.Remove(f.Name())
	if errors.Is(errRemove, os.ErrNotExist) {
		errRemove = nil
	}
	return errors.Join(errUnlock, errClose, errRemove)
}

// withFileLock runs fn while holding an exclusive lock on lockPath.
func withFileLock(lockPath string, fn func() error) error {
	f, err := acquireFileLock(lockPath)
	if errors.Is(err, ErrWouldBlock) {
		return fmt.Errorf("%w: %s", ErrLocked, lockPath)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := releaseFileLock(f); err != nil {
			slog.Warn("failed to release file lock", "path", lockPath, "error", err)
		}
	}()
	return fn()
}
