package command

import (
	"flag"
	"fmt"
	"io"
	"sort"

	"github.com/joeycumines/uat-helper/internal/config"
)

// Registry manages the collection of available commands.
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds a command, replacing any command of the same name.
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get returns a command by name.
func (r *Registry) Get(name string) (Command, error) {
	if cmd, exists := r.commands[name]; exists {
		return cmd, nil
	}
	return nil, fmt.Errorf("command not found: %s", name)
}

// List returns the sorted command names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run parses args[0] as a command name and the rest as its flags and
// arguments, then executes it. Flag errors are returned, not fatal.
func (r *Registry) Run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("no command given")
	}
	cmd, err := r.Get(args[0])
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "Usage: %s\n", cmd.Usage())
		_, _ = fmt.Fprintf(stderr, "\n%s\n\n", cmd.Description())
		_, _ = fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
	}
	cmd.SetupFlags(fs)
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	return cmd.Execute(fs.Args(), stdout, stderr)
}

// NewDefaultRegistry registers every command. configPath is where 'config'
// persists options; empty means the default path.
func NewDefaultRegistry(env *Env, cfg *config.Config, configPath, version string) *Registry {
	r := NewRegistry()
	r.Register(NewHelpCommand(r))
	r.Register(NewAboutCommand(version))
	r.Register(NewConfigCommand(cfg, configPath))
	r.Register(NewInitCommand(env))
	r.Register(NewShowCommand(env))
	r.Register(NewStatusCommand(env))
	r.Register(NewDiffCommand(env))
	r.Register(NewValidateCommand(env))
	r.Register(NewPlatformCommand(env))
	r.Register(NewVersionCommand(env))
	r.Register(NewSwitchCommand(env))
	r.Register(NewEventCommand(env))
	r.Register(NewPathCommand(env))
	r.Register(NewBuildCommand(env))
	r.Register(NewFilesCommand(env))
	r.Register(NewSelectFileCommand(env))
	r.Register(NewAppCommand(env))
	r.Register(NewShellCommand(env))
	return r
}
