package command

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/joeycumines/uat-helper/internal/appsettings"
	"github.com/joeycumines/uat-helper/internal/persist"
)

// FilesCommand lists the configuration files in the config directory.
type FilesCommand struct {
	*BaseCommand
	env *Env
}

func NewFilesCommand(env *Env) *FilesCommand {
	return &FilesCommand{
		BaseCommand: NewBaseCommand("files", "List configuration files, marking the current one", "files"),
		env:         env,
	}
}

func (c *FilesCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if err := c.env.load(stderr); err != nil {
		return err
	}
	a := c.env.App.Settings()
	if len(a.KnownConfigFiles) == 0 {
		_, _ = fmt.Fprintln(stdout, "No configuration files found (use 'init' to create one)")
		return nil
	}
	w := tabwriter.NewWriter(stdout, 0, 8, 2, ' ', 0)
	for i, file := range a.KnownConfigFiles {
		marker := " "
		if i == a.CurrentFileIndex {
			marker = "*"
		}
		_, _ = fmt.Fprintf(w, "%s %d\t%s\t%s\n", marker, i, persist.ConfigName(file), file)
	}
	return w.Flush()
}

// SelectFileCommand makes a configuration file current.
type SelectFileCommand struct {
	*BaseCommand
	env *Env
}

func NewSelectFileCommand(env *Env) *SelectFileCommand {
	return &SelectFileCommand{
		BaseCommand: NewBaseCommand("select-file", "Make a configuration file current", "select-file <name|file|index>"),
		env:         env,
	}
}

// Execute accepts an index from 'files', a configuration name or a file
// name.
func (c *SelectFileCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) != 1 {
		return usageError(c.Usage())
	}
	if err := c.env.load(stderr); err != nil {
		return err
	}
	if i, err := strconv.Atoi(args[0]); err == nil {
		if err := c.env.App.SelectFile(i); err != nil {
			return err
		}
	} else if err := c.env.App.SelectFileName(persist.FileName(args[0])); err != nil {
		return err
	}
	file, _ := c.env.App.Settings().CurrentFile()
	_, _ = fmt.Fprintf(stdout, "Current file: %s\n", file)
	return nil
}

// AppCommand shows or changes the app settings in UATHelper.json.
type AppCommand struct {
	*BaseCommand
	env *Env
}

func NewAppCommand(env *Env) *AppCommand {
	return &AppCommand{
		BaseCommand: NewBaseCommand("app", "Show or change app settings", "app [key [value]]"),
		env:         env,
	}
}

type appKey struct {
	name string
	get  func(*appsettings.AppSettings) string
	set  func(*appsettings.AppSettings, string) error
}

var appKeys = []appKey{
	{
		name: "color",
		get:  func(a *appsettings.AppSettings) string { return strconv.Itoa(a.ColorTheme) },
		set:  intSetter(func(a *appsettings.AppSettings, v int) { a.ColorTheme = v }),
	},
	{
		name: "style",
		get:  func(a *appsettings.AppSettings) string { return strconv.Itoa(a.StyleTheme) },
		set:  intSetter(func(a *appsettings.AppSettings, v int) { a.StyleTheme = v }),
	},
	{
		name: "ups",
		get:  func(a *appsettings.AppSettings) string { return strconv.FormatFloat(a.UpdatesPerSecond, 'g', -1, 64) },
		set: func(a *appsettings.AppSettings, s string) error {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("invalid number %q", s)
			}
			a.UpdatesPerSecond = v
			return nil
		},
	},
	{
		name: "config-dir",
		get:  func(a *appsettings.AppSettings) string { return a.ConfigDirectory },
		set: func(a *appsettings.AppSettings, s string) error {
			a.ConfigDirectory = s
			return nil
		},
	},
	{
		name: "revision",
		get:  func(a *appsettings.AppSettings) string { return a.Revision.String() },
	},
}

func intSetter(f func(*appsettings.AppSettings, int)) func(*appsettings.AppSettings, string) error {
	return func(a *appsettings.AppSettings, s string) error {
		v, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("invalid integer %q", s)
		}
		f(a, v)
		return nil
	}
}

func findAppKey(name string) (appKey, error) {
	for _, k := range appKeys {
		if k.name == name {
			return k, nil
		}
	}
	return appKey{}, fmt.Errorf("unknown app setting: %s", name)
}

func (c *AppCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if err := c.env.load(stderr); err != nil {
		return err
	}
	a := c.env.App.Settings()

	switch len(args) {
	case 0:
		for _, k := range appKeys {
			_, _ = fmt.Fprintf(stdout, "%s: %s\n", k.name, k.get(a))
		}
		return nil
	case 1:
		k, err := findAppKey(args[0])
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(stdout, k.get(a))
		return nil
	case 2:
		k, err := findAppKey(args[0])
		if err != nil {
			return err
		}
		if k.set == nil {
			return fmt.Errorf("app setting %s is read-only", k.name)
		}
		probe := *a
		if err := k.set(&probe, args[1]); err != nil {
			return err
		}
		if err := c.env.App.Update(func(a *appsettings.AppSettings) { _ = k.set(a, args[1]) }); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "%s: %s\n", k.name, k.get(c.env.App.Settings()))
		return nil
	default:
		return usageError(c.Usage())
	}
}
