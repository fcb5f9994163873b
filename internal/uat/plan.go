package uat

import (
	"context"
	"fmt"

	"github.com/joeycumines/uat-helper/internal/jobs"
	"github.com/joeycumines/uat-helper/internal/settings"
)

// Stage orders the steps of a build.
type Stage int

const (
	StagePreBuild Stage = iota
	StageBuild
	StagePostBuild
)

func (s Stage) String() string {
	switch s {
	case StagePreBuild:
		return "pre-build"
	case StageBuild:
		return "build"
	case StagePostBuild:
		return "post-build"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Step is one program to run.
type Step struct {
	Stage   Stage
	Name    string
	Program Program
}

// Plan returns the steps of a build of the selected platform: its enabled
// pre-build events, the BuildCookRun command, then its enabled post-build
// events.
func Plan(s *settings.Settings) ([]Step, error) {
	line, err := CommandLine(s)
	if err != nil {
		return nil, err
	}
	p, _ := s.Selected()

	var steps []Step
	for _, name := range s.EnabledNames(p, settings.KindPreBuild) {
		steps = append(steps, Step{Stage: StagePreBuild, Name: name, Program: SplitProgram(name)})
	}
	steps = append(steps, Step{Stage: StageBuild, Name: "BuildCookRun " + p.Name, Program: SplitProgram(line)})
	for _, name := range s.EnabledNames(p, settings.KindPostBuild) {
		steps = append(steps, Step{Stage: StagePostBuild, Name: name, Program: SplitProgram(name)})
	}
	return steps, nil
}

// Runner executes a program.
type Runner interface {
	Run(ctx context.Context, p Program) error
}

// Submitter accepts tasks for background execution.
type Submitter interface {
	Submit(name string, task jobs.Task) (string, error)
}

// Submit queues every step on pool, in order, and returns the job ids.
func Submit(pool Submitter, steps []Step, runner Runner) ([]string, error) {
	ids := make([]string, 0, len(steps))
	for _, step := range steps {
		program := step.Program
		id, err := pool.Submit(step.Stage.String()+": "+step.Name, jobs.TaskFunc(func(ctx context.Context) error {
			return runner.Run(ctx, program)
		}))
		if err != nil {
			return ids, fmt.Errorf("failed to submit %s step %q: %w", step.Stage, step.Name, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
