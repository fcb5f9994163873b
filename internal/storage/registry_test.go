package storage

import (
	"testing"
)

func TestGetBackend(t *testing.T) {
	t.Run("unknown backend returns error", func(t *testing.T) {
		_, err := GetBackend("nonexistent", t.TempDir())
		if err == nil {
			t.Fatal("expected error for unknown backend")
		}
	})

	t.Run("memory backend succeeds", func(t *testing.T) {
		b, err := GetBackend("memory", "")
		if err != nil {
			t.Fatalf("GetBackend(memory) failed: %v", err)
		}
		if _, ok := b.(*InMemoryBackend); !ok {
			t.Fatalf("expected *InMemoryBackend, got %T", b)
		}
	})

	t.Run("fs backend succeeds", func(t *testing.T) {
		dir := t.TempDir()
		b, err := GetBackend("fs", dir)
		if err != nil {
			t.Fatalf("GetBackend(fs) failed: %v", err)
		}
		if _, ok := b.(*FileSystemBackend); !ok {
			t.Fatalf("expected *FileSystemBackend, got %T", b)
		}
	})

	t.Run("names are sorted", func(t *testing.T) {
		names := BackendNames()
		if len(names) != 2 || names[0] != "fs" || names[1] != "memory" {
			t.Fatalf("BackendNames() = %v", names)
		}
	})
}

func TestResolveDirectory(t *testing.T) {
	orig := defaultDirectory
	defaultDirectory = func() (string, error) { return "/default", nil }
	defer func() { defaultDirectory = orig }()

	if got, _ := ResolveDirectory("/explicit"); got != "/explicit" {
		t.Errorf("ResolveDirectory(explicit) = %q", got)
	}
	if got, _ := ResolveDirectory(""); got != "/default" {
		t.Errorf("ResolveDirectory(\"\") = %q", got)
	}
}
