package storage

import (
	"fmt"
	"sort"
)

// BackendFactory creates a Backend rooted at dir.
type BackendFactory func(dir string) (Backend, error)

// BackendRegistry maps backend names to their factory functions.
var BackendRegistry = map[string]BackendFactory{
	"fs": func(dir string) (Backend, error) {
		return NewFileSystemBackend(dir)
	},
	"memory": func(string) (Backend, error) {
		return NewInMemoryBackend(), nil
	},
}

// GetBackend creates an instance of the named backend.
func GetBackend(name, dir string) (Backend, error) {
	factory, ok := BackendRegistry[name]
	if !ok {
		return nil, fmt.Errorf("unknown storage backend: %s (available: %v)", name, BackendNames())
	}
	return factory(dir)
}

// BackendNames returns the registered backend names, sorted.
func BackendNames() []string {
	names := make([]string, 0, len(BackendRegistry))
	for name := range BackendRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
