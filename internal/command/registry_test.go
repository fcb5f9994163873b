package command

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
)

// TestCommand implements Command interface for testing
type TestCommand struct {
	*BaseCommand
	verbose bool
	got     []string
}

func NewTestCommand(name, description, usage string) *TestCommand {
	return &TestCommand{
		BaseCommand: NewBaseCommand(name, description, usage),
	}
}

func (c *TestCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "Verbose output")
}

func (c *TestCommand) Execute(args []string, stdout, stderr io.Writer) error {
	c.got = args
	return nil
}

func TestRegistry(t *testing.T) {
	t.Parallel()
	registry := NewRegistry()

	testCmd := NewTestCommand("test", "Test command", "test [options]")
	registry.Register(testCmd)

	cmd, err := registry.Get("test")
	if err != nil {
		t.Fatalf("Failed to get registered command: %v", err)
	}
	if cmd.Name() != "test" {
		t.Errorf("Expected command name 'test', got '%s'", cmd.Name())
	}

	if _, err := registry.Get("nonexistent"); err == nil {
		t.Error("Expected error for non-existent command")
	}

	registry.Register(NewTestCommand("alpha", "", ""))
	if got := strings.Join(registry.List(), ","); got != "alpha,test" {
		t.Errorf("Expected sorted list, got %s", got)
	}
}

func TestRegistryRun(t *testing.T) {
	t.Parallel()
	registry := NewRegistry()
	testCmd := NewTestCommand("test", "Test command", "test [options]")
	registry.Register(testCmd)

	var stdout, stderr bytes.Buffer
	if err := registry.Run([]string{"test", "-verbose", "a", "b"}, &stdout, &stderr); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !testCmd.verbose || strings.Join(testCmd.got, " ") != "a b" {
		t.Fatalf("unexpected parse: verbose=%v args=%v", testCmd.verbose, testCmd.got)
	}

	// flags reset on every run
	if err := registry.Run([]string{"test"}, &stdout, &stderr); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if testCmd.verbose {
		t.Fatal("expected -verbose to reset to its default")
	}

	err := registry.Run([]string{"test", "-h"}, &stdout, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(stderr.String(), "Usage: test [options]") {
		t.Fatalf("expected usage on stderr, got %q", stderr.String())
	}

	if err := registry.Run(nil, &stdout, &stderr); err == nil {
		t.Fatal("expected error for empty args")
	}
	if err := registry.Run([]string{"missing"}, &stdout, &stderr); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestNewDefaultRegistry(t *testing.T) {
	t.Parallel()
	env, _ := newTestEnv(t)
	registry := NewDefaultRegistry(env, nil, "", "1.0.0")
	want := []string{
		"about", "app", "build", "config", "diff", "event", "files", "help", "init", "path",
		"platform", "select-file", "shell", "show", "status", "switch", "validate", "version",
	}
	if got := strings.Join(registry.List(), " "); got != strings.Join(want, " ") {
		t.Fatalf("unexpected commands: %s", got)
	}
}
