package command

import (
	"fmt"
	"io"
)

// StatusCommand reports whether the current file is in canonical form, as
// a save would write it. Hand edits and files from older writers show as
// modified.
type StatusCommand struct {
	*BaseCommand
	env *Env
}

func NewStatusCommand(env *Env) *StatusCommand {
	return &StatusCommand{
		BaseCommand: NewBaseCommand("status", "Show whether the current file matches its saved form", "status"),
		env:         env,
	}
}

func (c *StatusCommand) Execute(args []string, stdout, stderr io.Writer) error {
	diff, file, err := canonicalDiff(c.env, stderr)
	if err != nil {
		return err
	}
	st := newStyler(stdout, c.env.Color)
	if diff == "" {
		_, _ = fmt.Fprintf(stdout, "%s: %s\n", file, st.clean.Render("clean"))
		return nil
	}
	_, _ = fmt.Fprintf(stdout, "%s%s: %s\n", file, st.marker(true), st.dirty.Render("modified"))
	return nil
}

// DiffCommand prints the changes a save would make to the current file.
type DiffCommand struct {
	*BaseCommand
	env *Env
}

func NewDiffCommand(env *Env) *DiffCommand {
	return &DiffCommand{
		BaseCommand: NewBaseCommand("diff", "Show the difference between the current file and its canonical form", "diff"),
		env:         env,
	}
}

func (c *DiffCommand) Execute(args []string, stdout, stderr io.Writer) error {
	diff, _, err := canonicalDiff(c.env, stderr)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(stdout, diff)
	return nil
}

func canonicalDiff(env *Env, stderr io.Writer) (diff, file string, err error) {
	file, err = env.currentFile(stderr)
	if err != nil {
		return "", "", err
	}
	engine, err := env.engine(stderr)
	if err != nil {
		return "", "", err
	}
	diff, err = engine.CanonicalDiff(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read %s: %w", file, err)
	}
	return diff, file, nil
}
