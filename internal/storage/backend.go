// Package storage provides the byte-level persistence backends used for
// configuration files: a lock-protected, atomically replacing file system
// backend and an in-memory backend for tests.
package storage

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidName is returned for file names that are empty or contain a path
// separator. Backends only address files directly inside their directory.
var ErrInvalidName = errors.New("invalid file name")

// Backend stores whole files by base name.
type Backend interface {
	// Read returns the content of name. It MUST return an error satisfying
	// errors.Is(err, os.ErrNotExist) when the file does not exist.
	Read(name string) ([]byte, error)

	// Write replaces the entire content of name.
	Write(name string, data []byte) error

	// List returns the base names of all files in the backend directory,
	// sorted lexically.
	List() ([]string, error)

	// Dir returns the directory the backend is rooted at, for display.
	Dir() string
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
