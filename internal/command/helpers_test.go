package command

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/joeycumines/uat-helper/internal/appsettings"
	"github.com/joeycumines/uat-helper/internal/persist"
	"github.com/joeycumines/uat-helper/internal/storage"
	"github.com/joeycumines/uat-helper/internal/uat"
)

type fakeRunner struct {
	mu     sync.Mutex
	ran    []string
	failOn string
}

func (r *fakeRunner) Run(_ context.Context, p uat.Program) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ran = append(r.ran, p.Path)
	if p.Path == r.failOn {
		return errors.New("boom")
	}
	return nil
}

func (r *fakeRunner) programs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ran...)
}

type testEnv struct {
	env      *Env
	backend  *storage.InMemoryBackend
	recorder *persist.Recorder
	runner   *fakeRunner
	copied   []string
}

// newTestEnv returns an Env over an in-memory backend, with a recording
// reporter, clipboard and runner.
func newTestEnv(t *testing.T) (*Env, *testEnv) {
	t.Helper()
	te := &testEnv{
		backend:  storage.NewInMemoryBackend(),
		recorder: &persist.Recorder{},
		runner:   &fakeRunner{},
	}
	env := &Env{
		App:      appsettings.NewManager(te.backend, nil),
		Reporter: te.recorder,
		Color:    "never",
		Workers:  1,
		Runner:   te.runner,
		Clipboard: func(s string) error {
			te.copied = append(te.copied, s)
			return nil
		},
	}
	te.env = env
	return env, te
}

func runIn(t *testing.T, r *Registry, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := r.Run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func mustRun(t *testing.T, r *Registry, args ...string) string {
	t.Helper()
	out, errOut, err := runIn(t, r, args...)
	if err != nil {
		t.Fatalf("%s: %v\nstderr: %s", strings.Join(args, " "), err, errOut)
	}
	return out
}
