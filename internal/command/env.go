package command

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/atotto/clipboard"

	"github.com/joeycumines/uat-helper/internal/appsettings"
	"github.com/joeycumines/uat-helper/internal/config"
	"github.com/joeycumines/uat-helper/internal/persist"
	"github.com/joeycumines/uat-helper/internal/uat"
)

// ErrNoFileSelected is returned by commands that need a current
// configuration file when none is selected.
var ErrNoFileSelected = errors.New("no configuration file selected (see 'init' and 'select-file')")

// Env is the state shared by the configuration commands.
type Env struct {
	// App holds UATHelper.json. It is loaded on first use.
	App *appsettings.Manager
	// Reporter receives load problems. Nil prints them to stderr.
	Reporter persist.Reporter
	// Stdin is read by the shell. Nil means os.Stdin.
	Stdin io.Reader
	// Config supplies per-command defaults. It may be nil.
	Config *config.Config
	// Color is auto, always or never.
	Color string
	// Workers is the number of build steps run at once.
	Workers int
	// Clipboard copies text. Nil means the system clipboard.
	Clipboard func(string) error
	// Runner runs build steps. Nil means child processes writing to the
	// command's output.
	Runner uat.Runner

	loaded bool
}

func (e *Env) load(stderr io.Writer) error {
	if e.loaded {
		return nil
	}
	if err := e.App.Load(); err != nil {
		var merr *appsettings.MigrationError
		if !errors.As(err, &merr) {
			return err
		}
		_, _ = fmt.Fprintf(stderr, "Warning: %v; using default app settings\n", err)
	}
	e.loaded = true
	return nil
}

func (e *Env) reporter(stderr io.Writer) persist.Reporter {
	if e.Reporter != nil {
		return e.Reporter
	}
	return persist.ReporterFunc(func(title, message string) {
		_, _ = fmt.Fprintf(stderr, "%s: %s\n", title, message)
	})
}

// engine returns an Engine over the configured config directory.
func (e *Env) engine(stderr io.Writer) (*persist.Engine, error) {
	if err := e.load(stderr); err != nil {
		return nil, err
	}
	backend, err := e.App.ConfigBackend()
	if err != nil {
		return nil, fmt.Errorf("failed to open config directory: %w", err)
	}
	return persist.NewEngine(backend, e.reporter(stderr)), nil
}

// currentFile returns the selected configuration file name.
func (e *Env) currentFile(stderr io.Writer) (string, error) {
	if err := e.load(stderr); err != nil {
		return "", err
	}
	file, ok := e.App.Settings().CurrentFile()
	if !ok {
		return "", ErrNoFileSelected
	}
	return file, nil
}

// open loads the selected configuration file.
func (e *Env) open(stderr io.Writer) (*persist.Document, error) {
	file, err := e.currentFile(stderr)
	if err != nil {
		return nil, err
	}
	engine, err := e.engine(stderr)
	if err != nil {
		return nil, err
	}
	return persist.Open(engine, file), nil
}

func (e *Env) copy(text string) error {
	if e.Clipboard != nil {
		return e.Clipboard(text)
	}
	return clipboard.WriteAll(text)
}

func (e *Env) runner(stdout, stderr io.Writer) uat.Runner {
	if e.Runner != nil {
		return e.Runner
	}
	return &uat.ExecRunner{Stdout: stdout, Stderr: stderr}
}

func (e *Env) stdin() io.Reader {
	if e.Stdin != nil {
		return e.Stdin
	}
	return os.Stdin
}

// commandBool returns the boolean option name of the [command] section,
// falling back to the global option and then to false.
func (e *Env) commandBool(command, name string) bool {
	if e.Config == nil {
		return false
	}
	v, ok := e.Config.GetCommandOption(command, name)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
