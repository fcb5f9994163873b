package command

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/uat-helper/internal/jobs"
	"github.com/joeycumines/uat-helper/internal/persist"
	"github.com/joeycumines/uat-helper/internal/uat"
)

// BuildCommand prints the BuildCookRun command line for the selected
// platform, and optionally copies it or runs the build.
type BuildCommand struct {
	*BaseCommand
	env  *Env
	copy bool
	run  bool
}

func NewBuildCommand(env *Env) *BuildCommand {
	return &BuildCommand{
		BaseCommand: NewBaseCommand("build", "Print, copy or run the BuildCookRun command line", "build [options]"),
		env:         env,
	}
}

func (c *BuildCommand) SetupFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.copy, "copy", c.env.commandBool("build", "copy"), "Copy the command line to the clipboard")
	fs.BoolVar(&c.run, "run", c.env.commandBool("build", "run"), "Run the pre-build events, the build and the post-build events")
}

func (c *BuildCommand) Execute(args []string, stdout, stderr io.Writer) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	doc, err := c.env.open(stderr)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return build(ctx, c.env, doc, c.copy, c.run, stdout, stderr)
}

func build(ctx context.Context, env *Env, doc *persist.Document, copyLine, run bool, stdout, stderr io.Writer) error {
	line, err := uat.CommandLine(doc.Settings())
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, line)

	if copyLine {
		if err := env.copy(line); err != nil {
			return fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		_, _ = fmt.Fprintln(stderr, "Copied to clipboard")
	}
	if !run {
		return nil
	}

	steps, err := uat.Plan(doc.Settings())
	if err != nil {
		return err
	}
	return runSteps(ctx, env, steps, stdout, stderr)
}

// errSkipped marks steps not run because an earlier step failed.
var errSkipped = errors.New("skipped after an earlier failure")

// haltingRunner refuses to start programs once one has failed.
type haltingRunner struct {
	uat.Runner
	failed atomic.Bool
}

func (r *haltingRunner) Run(ctx context.Context, p uat.Program) error {
	if r.failed.Load() {
		return errSkipped
	}
	err := r.Runner.Run(ctx, p)
	if err != nil {
		r.failed.Store(true)
	}
	return err
}

// runSteps runs steps on a job pool one stage at a time: every pre-build
// event finishes before the build starts, and the build finishes before any
// post-build event. Within a stage env.Workers steps run at once. After a
// failure the queued steps are dropped, later stages are not started, and
// the first error is returned.
func runSteps(ctx context.Context, env *Env, steps []uat.Step, stdout, stderr io.Writer) error {
	pool := jobs.NewPool(ctx, env.Workers)
	defer pool.Close()

	var (
		mu       sync.Mutex
		firstErr error
	)
	failed := func() error {
		mu.Lock()
		defer mu.Unlock()
		return firstErr
	}
	pool.OnDone = func(r jobs.Result) {
		mu.Lock()
		defer mu.Unlock()
		switch {
		case errors.Is(r.Err, errSkipped):
			_, _ = fmt.Fprintf(stderr, "skipped %s\n", r.Name)
		case r.Err != nil:
			_, _ = fmt.Fprintf(stderr, "FAILED %s: %v\n", r.Name, r.Err)
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", r.Name, r.Err)
				if dropped := pool.ClearAll(); dropped > 0 {
					_, _ = fmt.Fprintf(stderr, "skipped %d remaining step(s)\n", dropped)
				}
			}
		default:
			_, _ = fmt.Fprintf(stderr, "done %s (%s)\n", r.Name, r.Finished.Sub(r.Started).Round(time.Millisecond))
		}
	}

	runner := &haltingRunner{Runner: env.runner(stdout, stderr)}
	submitted := 0
	for _, stage := range stages(steps) {
		if _, err := uat.Submit(pool, stage, runner); err != nil {
			return err
		}
		submitted += len(stage)
		if err := pool.Wait(ctx); err != nil {
			return err
		}
		if err := failed(); err != nil {
			if rest := len(steps) - submitted; rest > 0 {
				_, _ = fmt.Fprintf(stderr, "skipped %d remaining step(s)\n", rest)
			}
			return err
		}
	}
	return nil
}

// stages splits steps into runs of the same stage, keeping their order.
func stages(steps []uat.Step) [][]uat.Step {
	var out [][]uat.Step
	for i := 0; i < len(steps); {
		j := i + 1
		for j < len(steps) && steps[j].Stage == steps[i].Stage {
			j++
		}
		out = append(out, steps[i:j])
		i = j
	}
	return out
}

