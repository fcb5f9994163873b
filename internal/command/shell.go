package command

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/joeycumines/uat-helper/internal/argv"
	"github.com/joeycumines/uat-helper/internal/persist"
)

// ErrUnsavedChanges is returned when the shell's input ends while the
// document has unsaved changes. They are discarded.
var ErrUnsavedChanges = errors.New("input ended with unsaved changes")

// ShellCommand edits the current configuration interactively. Edits are
// kept in memory until saved.
type ShellCommand struct {
	*BaseCommand
	env *Env
}

func NewShellCommand(env *Env) *ShellCommand {
	return &ShellCommand{
		BaseCommand: NewBaseCommand("shell", "Edit the current configuration interactively", "shell"),
		env:         env,
	}
}

const shellHelp = `Commands:
  platform, version, switch, event, path   edit as the one-shot commands do
  show                                     print the configuration
  build [-copy] [-run]                     print, copy or run the command line
  status                                   report unsaved changes
  diff                                     show unsaved changes
  save                                     write the file
  save-as <name>                           write to UATHelper<name>.json and select it
  revert                                   discard unsaved changes
  quit                                     leave (refused with unsaved changes)
  quit!                                    leave, discarding unsaved changes
`

type shell struct {
	env    *Env
	doc    *persist.Document
	st     *styler
	stdout io.Writer
	stderr io.Writer
}

func (c *ShellCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	doc, err := c.env.open(stderr)
	if err != nil {
		return err
	}
	sh := &shell{
		env:    c.env,
		doc:    doc,
		st:     newStyler(stdout, c.env.Color),
		stdout: stdout,
		stderr: stderr,
	}
	return sh.loop(bufio.NewScanner(c.env.stdin()))
}

func (sh *shell) prompt() {
	_, _ = fmt.Fprintf(sh.stdout, "%s%s> ", persist.ConfigName(sh.doc.File()), sh.st.marker(sh.doc.Dirty()))
}

func (sh *shell) loop(in *bufio.Scanner) error {
	for sh.prompt(); in.Scan(); sh.prompt() {
		words := argv.ParseSlice(in.Text())
		if len(words) == 0 {
			continue
		}
		quit, err := sh.exec(words)
		if err != nil {
			_, _ = fmt.Fprintf(sh.stderr, "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	_, _ = fmt.Fprintln(sh.stdout)
	if err := in.Err(); err != nil {
		return err
	}
	if sh.doc.Dirty() {
		return ErrUnsavedChanges
	}
	return nil
}

func (sh *shell) exec(words []string) (quit bool, err error) {
	verb, args := words[0], words[1:]
	if e, ok := edits[verb]; ok {
		return false, e(sh.doc.Settings(), args, sh.stdout)
	}

	switch verb {
	case "help", "?":
		_, _ = fmt.Fprint(sh.stdout, shellHelp)
	case "show":
		renderDocument(sh.stdout, sh.doc, sh.st)
	case "build":
		return false, sh.build(args)
	case "status":
		if sh.doc.Dirty() {
			_, _ = fmt.Fprintln(sh.stdout, sh.st.dirty.Render("unsaved changes"))
		} else {
			_, _ = fmt.Fprintln(sh.stdout, sh.st.clean.Render("no unsaved changes"))
		}
	case "diff":
		diff, err := sh.doc.Diff()
		if err != nil {
			return false, err
		}
		_, _ = fmt.Fprint(sh.stdout, diff)
	case "save":
		if err := sh.doc.Save(); err != nil {
			return false, err
		}
		_, _ = fmt.Fprintf(sh.stdout, "Saved %s\n", sh.doc.File())
	case "save-as":
		if len(args) != 1 {
			return false, usageError("save-as <name>")
		}
		return false, sh.saveAs(args[0])
	case "revert":
		sh.doc.Revert()
	case "quit", "exit":
		if sh.doc.Dirty() {
			return false, errors.New("unsaved changes; 'save' them, or 'quit!' to discard")
		}
		return true, nil
	case "quit!", "exit!":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q (try 'help'; known: %s)", verb, strings.Join(shellVerbs(), ", "))
	}
	return false, nil
}

func shellVerbs() []string {
	verbs := []string{"build", "diff", "help", "quit", "quit!", "revert", "save", "save-as", "show", "status"}
	for v := range edits {
		verbs = append(verbs, v)
	}
	sort.Strings(verbs)
	return verbs
}

func (sh *shell) build(args []string) error {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	fs.SetOutput(sh.stderr)
	copyLine := fs.Bool("copy", sh.env.commandBool("build", "copy"), "Copy the command line to the clipboard")
	run := fs.Bool("run", sh.env.commandBool("build", "run"), "Run the build")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return build(context.Background(), sh.env, sh.doc, *copyLine, *run, sh.stdout, sh.stderr)
}

func (sh *shell) saveAs(name string) error {
	file := persist.FileName(name)
	if err := sh.doc.SaveAs(file); err != nil {
		return err
	}
	if err := sh.env.App.SelectFileName(file); err != nil {
		return fmt.Errorf("saved %s but could not select it: %w", file, err)
	}
	_, _ = fmt.Fprintf(sh.stdout, "Saved %s\n", file)
	return nil
}
