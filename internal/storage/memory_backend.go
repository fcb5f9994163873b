package storage

import (
	"fmt"
	"os"
	"sort"
	"sync"
)

// InMemoryBackend implements Backend with a map, for tests.
type InMemoryBackend struct {
	mu    sync.RWMutex
	files map[string][]byte

	// WriteErr, when set, is returned by every Write.
	WriteErr error
}

// NewInMemoryBackend creates an empty in-memory backend.
func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{files: make(map[string][]byte)}
}

func (b *InMemoryBackend) Dir() string { return "memory:" }

func (b *InMemoryBackend) Read(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	b.mu.RLock()
	data, ok := b.files[name]
	b.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("failed to read %s: %w", name, os.ErrNotExist)
	}
	return append([]byte(nil), data...), nil
}

func (b *InMemoryBackend) Write(name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	if b.WriteErr != nil {
		return b.WriteErr
	}
	b.mu.Lock()
	b.files[name] = append([]byte(nil), data...)
	b.mu.Unlock()
	return nil
}

func (b *InMemoryBackend) List() ([]string, error) {
	b.mu.RLock()
	names := make([]string, 0, len(b.files))
	for name := range b.files {
		names = append(names, name)
	}
	b.mu.RUnlock()
	sort.Strings(names)
	return names, nil
}

var _ Backend = (*InMemoryBackend)(nil)
