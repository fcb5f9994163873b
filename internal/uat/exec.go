package uat

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
)

// ExecRunner runs programs as child processes.
type ExecRunner struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts p and waits for it to exit. Cancelling ctx kills it.
func (r *ExecRunner) Run(ctx context.Context, p Program) error {
	if p.Path == "" {
		return fmt.Errorf("empty program")
	}
	cmd := exec.CommandContext(ctx, p.Path, p.Argv()...)
	configureCommand(cmd, p)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	slog.Debug("starting process", "path", p.Path, "args", p.Args)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", p.Path, err)
	}
	return nil
}
