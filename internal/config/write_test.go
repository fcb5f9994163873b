package config

import (
	"os"
	"path/filepath"
	"testing"
)

func readConfig(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read config file: %v", err)
	}
	return string(data)
}

func TestSetKeyInFile_NewKeyEmptyFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "config")

	if err := SetKeyInFile(path, "color", "never"); err != nil {
		t.Fatalf("SetKeyInFile returned error: %v", err)
	}
	if got := readConfig(t, path); got != "color never" {
		t.Fatalf("expected 'color never', got %q", got)
	}

	cfg, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath returned error: %v", err)
	}
	if v, ok := cfg.GetGlobalOption("color"); !ok || v != "never" {
		t.Fatalf("expected color=never after round-trip, got %q exists=%v", v, ok)
	}
}

func TestSetKeyInFile_ReplacesInPlace(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config")
	initial := "# tool options\ncolor auto\njobs.workers 2\n"
	if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
		t.Fatal(err)
	}

	if err := SetKeyInFile(path, "color", "always"); err != nil {
		t.Fatalf("SetKeyInFile returned error: %v", err)
	}
	if got, want := readConfig(t, path), "# tool options\ncolor always\njobs.workers 2\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSetKeyInFile_AppendsKeepingTrailingNewline(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config")
	if err := os.WriteFile(path, []byte("color auto\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := SetKeyInFile(path, "home", ""); err != nil {
		t.Fatalf("SetKeyInFile returned error: %v", err)
	}
	if got, want := readConfig(t, path), "color auto\nhome\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestSetKeyInFile_InsertsBeforeSections(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config")
	initial := "color auto\n[build]\ncolor never\n"
	if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
		t.Fatal(err)
	}

	if err := SetKeyInFile(path, "jobs.workers", "4"); err != nil {
		t.Fatalf("SetKeyInFile returned error: %v", err)
	}
	if err := SetKeyInFile(path, "color", "always"); err != nil {
		t.Fatalf("SetKeyInFile returned error: %v", err)
	}
	want := "color always\njobs.workers 4\n[build]\ncolor never\n"
	if got := readConfig(t, path); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestUnsetKeyInFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "config")
	initial := "color auto\nhome /x\n[build]\nhome /y\n"
	if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
		t.Fatal(err)
	}

	if err := UnsetKeyInFile(path, "home"); err != nil {
		t.Fatalf("UnsetKeyInFile returned error: %v", err)
	}
	if err := UnsetKeyInFile(path, "missing"); err != nil {
		t.Fatalf("UnsetKeyInFile returned error: %v", err)
	}
	if got, want := readConfig(t, path), "color auto\n[build]\nhome /y\n"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
