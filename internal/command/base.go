package command

import (
	"flag"
	"io"
)

// Command is one uathelper subcommand. The registry gives each command its
// own FlagSet, calls SetupFlags on it, and passes the remaining positional
// arguments to Execute.
type Command interface {
	Name() string
	Description() string
	Usage() string
	SetupFlags(fs *flag.FlagSet)
	Execute(args []string, stdout, stderr io.Writer) error
}

// BaseCommand carries the name, description and usage line. Commands embed
// it and override SetupFlags when they take flags.
type BaseCommand struct {
	name, description, usage string
}

func NewBaseCommand(name, description, usage string) *BaseCommand {
	return &BaseCommand{name: name, description: description, usage: usage}
}

func (c *BaseCommand) Name() string             { return c.name }
func (c *BaseCommand) Description() string      { return c.description }
func (c *BaseCommand) Usage() string            { return c.usage }
func (c *BaseCommand) SetupFlags(*flag.FlagSet) {}
