package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const filePerm os.FileMode = 0644

// FileSystemBackend implements Backend on a local directory.
type FileSystemBackend struct {
	dir string
}

// NewFileSystemBackend creates a backend rooted at dir. The directory is
// created on first write, not here.
func NewFileSystemBackend(dir string) (*FileSystemBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}
	return &FileSystemBackend{dir: abs}, nil
}

func (b *FileSystemBackend) Dir() string { return b.dir }

// Path returns the absolute path of name within the backend directory.
func (b *FileSystemBackend) Path(name string) string { return filepath.Join(b.dir, name) }

// Read returns the file content. Missing files surface as os.ErrNotExist.
func (b *FileSystemBackend) Read(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.Path(name))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// Write atomically replaces the file while holding a sibling lock file, so
// two processes saving the same config cannot interleave.
func (b *FileSystemBackend) Write(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	target := b.Path(name)
	return withFileLock(target+".lock", func() error {
		if err := AtomicWriteFile(target, data, filePerm); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		return nil
	})
}

// List returns regular file names in the directory. A missing directory
// lists as empty.
func (b *FileSystemBackend) List() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", b.dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

var _ Backend = (*FileSystemBackend)(nil)
