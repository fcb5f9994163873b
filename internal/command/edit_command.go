package command

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/joeycumines/uat-helper/internal/persist"
	"github.com/joeycumines/uat-helper/internal/settings"
	"github.com/joeycumines/uat-helper/internal/uat"
)

// EditCommand loads the current configuration file, applies one edit and
// saves the file if anything changed.
type EditCommand struct {
	*BaseCommand
	env  *Env
	edit edit
}

func newEditCommand(env *Env, name, description, usage string) *EditCommand {
	return &EditCommand{
		BaseCommand: NewBaseCommand(name, description, usage),
		env:         env,
		edit:        edits[name],
	}
}

func NewPlatformCommand(env *Env) *EditCommand {
	return newEditCommand(env, "platform", "Add, remove, rename, select or list platforms", platformUsage)
}

func NewVersionCommand(env *Env) *EditCommand {
	return newEditCommand(env, "version", "Edit build versions and the selected platform's choice", versionUsage)
}

func NewSwitchCommand(env *Env) *EditCommand {
	return newEditCommand(env, "switch", "Edit BuildCookRun switches and the selected platform's choice", switchUsage)
}

func NewEventCommand(env *Env) *EditCommand {
	return newEditCommand(env, "event", "Edit pre- and post-build events", eventUsage)
}

func NewPathCommand(env *Env) *EditCommand {
	return newEditCommand(env, "path", "Set the engine root or project path", pathUsage)
}

func (c *EditCommand) Execute(args []string, stdout, stderr io.Writer) error {
	doc, err := c.env.open(stderr)
	if err != nil {
		return err
	}
	if err := c.edit(doc.Settings(), args, stdout); err != nil {
		return err
	}
	if !doc.Dirty() {
		return nil
	}
	if err := doc.Save(); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Saved %s\n", doc.File())
	return nil
}

// InitCommand writes the default configuration to a new file and selects it.
type InitCommand struct {
	*BaseCommand
	env      *Env
	name     string
	force    bool
	noSelect bool
}

func NewInitCommand(env *Env) *InitCommand {
	return &InitCommand{
		BaseCommand: NewBaseCommand("init", "Create a configuration file with the default options", "init [options]"),
		env:         env,
	}
}

func (c *InitCommand) SetupFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.name, "name", "Default", "Configuration name; the file is UATHelper<name>.json")
	fs.BoolVar(&c.force, "force", false, "Overwrite an existing file")
	fs.BoolVar(&c.noSelect, "no-select", false, "Do not make the new file current")
}

func (c *InitCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	name := strings.TrimSpace(c.name)
	if name == "" {
		return errors.New("configuration name cannot be empty")
	}
	file := persist.FileName(name)

	engine, err := c.env.engine(stderr)
	if err != nil {
		return err
	}
	if engine.Exists(file) && !c.force {
		_, _ = fmt.Fprintf(stdout, "Configuration already exists: %s\n", file)
		_, _ = fmt.Fprintln(stdout, "Use -force to overwrite it")
		return nil
	}
	if err := engine.Save(file, settings.Defaults()); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "Created %s in %s\n", file, engine.Backend().Dir())

	if c.noSelect {
		return c.env.App.Rescan()
	}
	if err := c.env.App.SelectFileName(file); err != nil {
		return fmt.Errorf("created %s but could not select it: %w", file, err)
	}
	return nil
}

// ValidateCommand reports whether a command line can be built.
type ValidateCommand struct {
	*BaseCommand
	env *Env
}

func NewValidateCommand(env *Env) *ValidateCommand {
	return &ValidateCommand{
		BaseCommand: NewBaseCommand("validate", "Check the configuration can produce a command line", "validate"),
		env:         env,
	}
}

func (c *ValidateCommand) Execute(args []string, stdout, stderr io.Writer) error {
	doc, err := c.env.open(stderr)
	if err != nil {
		return err
	}
	if err := uat.Validate(doc.Settings()); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "OK")
	return nil
}
