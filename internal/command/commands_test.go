package command

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joeycumines/uat-helper/internal/settings"
	"github.com/joeycumines/uat-helper/internal/uat"
)

const testFile = "UATHelperDefault.json"

// newConfiguredRegistry returns a registry whose current file is a default
// configuration with valid paths and one version enabled on Win64.
func newConfiguredRegistry(t *testing.T) (*Registry, *testEnv) {
	t.Helper()
	env, te := newTestEnv(t)
	r := NewDefaultRegistry(env, nil, "", "test")
	assert.Equal(t, "Created UATHelperDefault.json in memory:\n", mustRun(t, r, "init"))
	assert.Equal(t, "Saved UATHelperDefault.json\n", mustRun(t, r, "path", "root", `C:\UE\`))
	mustRun(t, r, "path", "project", "D:/Game/Game.uproject")
	mustRun(t, r, "version", "enable", "Development")
	mustRun(t, r, "switch", "enable", "pak")
	return r, te
}

const testLine = "C:/UE/Engine/Build/BatchFiles/RunUAT.bat BuildCookRun -project=D:/Game/Game.uproject" +
	" -targetplatform=Win64 -clientconfig=Development -servertargetplatform=win64 -serverconfig=Development -pak"

func TestInitCommand(t *testing.T) {
	t.Parallel()
	env, te := newTestEnv(t)
	r := NewDefaultRegistry(env, nil, "", "test")

	_, _, err := runIn(t, r, "show")
	require.ErrorIs(t, err, ErrNoFileSelected)

	mustRun(t, r, "init")
	assert.Equal(t, "Configuration already exists: UATHelperDefault.json\nUse -force to overwrite it\n", mustRun(t, r, "init"))
	mustRun(t, r, "init", "-force")

	mustRun(t, r, "init", "-name", "Nightly", "-no-select")
	file, ok := env.App.Settings().CurrentFile()
	require.True(t, ok)
	assert.Equal(t, testFile, file)
	assert.Equal(t, []string{"UATHelperDefault.json", "UATHelperNightly.json"}, env.App.Settings().KnownConfigFiles)

	data, err := te.backend.Read("UATHelper.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Currently Loaded File": "UATHelperDefault.json"`)

	_, _, err = runIn(t, r, "init", "-name", " ")
	assert.ErrorContains(t, err, "name cannot be empty")
}

func TestShowCommand(t *testing.T) {
	t.Parallel()
	env, _ := newTestEnv(t)
	r := NewDefaultRegistry(env, nil, "", "test")
	mustRun(t, r, "init")

	out := mustRun(t, r, "show")
	assert.Contains(t, out, "File: UATHelperDefault.json\n")
	assert.Contains(t, out, "\nPlatforms:\n* Win64\n  XboxOneGDK\n")
	assert.Contains(t, out, "\nVersions:\n[ ] Shipping\n")
	assert.Contains(t, out, "\nCommand line:\nInvalid Main Directory\n")

	r, _ = newConfiguredRegistry(t)
	out = mustRun(t, r, "show")
	assert.Contains(t, out, "[x] Development\n")
	assert.Contains(t, out, "\nCommand line:\n"+testLine+"\n")
}

func TestEditCommand_SavesOnlyWhenChanged(t *testing.T) {
	t.Parallel()
	r, te := newConfiguredRegistry(t)

	assert.Equal(t, "[ ] Shipping\n[ ] Test\n[x] Development\n[ ] Debug\n", mustRun(t, r, "version", "list"))

	before, err := te.backend.Read(testFile)
	require.NoError(t, err)
	assert.Empty(t, mustRun(t, r, "version", "enable", "Development"))
	after, err := te.backend.Read(testFile)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	assert.Equal(t, "Saved UATHelperDefault.json\n", mustRun(t, r, "platform", "add", "Switch"))
	assert.Contains(t, mustRun(t, r, "platform", "list"), "  Switch\n")

	_, _, err = runIn(t, r, "version", "enable", "Nope")
	assert.ErrorIs(t, err, settings.ErrNotFound)
	_, _, err = runIn(t, r, "platform", "add", "Win64")
	assert.ErrorIs(t, err, settings.ErrDuplicateName)
}

func TestValidateCommand(t *testing.T) {
	t.Parallel()
	env, _ := newTestEnv(t)
	r := NewDefaultRegistry(env, nil, "", "test")
	mustRun(t, r, "init")

	_, _, err := runIn(t, r, "validate")
	assert.EqualError(t, err, "Invalid Main Directory")

	r, _ = newConfiguredRegistry(t)
	assert.Equal(t, "OK\n", mustRun(t, r, "validate"))
	mustRun(t, r, "version", "disable", "Development")
	_, _, err = runIn(t, r, "validate")
	assert.EqualError(t, err, "Invalid Version Selected")
}

func TestBuildCommand_Print(t *testing.T) {
	t.Parallel()
	r, te := newConfiguredRegistry(t)

	assert.Equal(t, testLine+"\n", mustRun(t, r, "build"))
	assert.Empty(t, te.copied)
	assert.Empty(t, te.runner.programs())
}

func TestBuildCommand_Copy(t *testing.T) {
	t.Parallel()
	r, te := newConfiguredRegistry(t)

	out, errOut, err := runIn(t, r, "build", "-copy")
	require.NoError(t, err)
	assert.Equal(t, testLine+"\n", out)
	assert.Equal(t, "Copied to clipboard\n", errOut)
	assert.Equal(t, []string{testLine}, te.copied)
}

func TestBuildCommand_Run(t *testing.T) {
	t.Parallel()
	r, te := newConfiguredRegistry(t)
	mustRun(t, r, "event", "pre", "add", "a.bat")
	mustRun(t, r, "event", "pre", "enable", "a.bat")
	mustRun(t, r, "event", "post", "add", `"C:/Tools/up load.exe" -quiet`)
	mustRun(t, r, "event", "post", "enable", `"C:/Tools/up load.exe" -quiet`)

	out, errOut, err := runIn(t, r, "build", "-run")
	require.NoError(t, err, errOut)
	assert.Equal(t, testLine+"\n", out)
	assert.Equal(t, []string{"a.bat", "C:/UE/Engine/Build/BatchFiles/RunUAT.bat", "C:/Tools/up load.exe"}, te.runner.programs())
	assert.Contains(t, errOut, "done pre-build: a.bat (")
	assert.Contains(t, errOut, "done build: BuildCookRun Win64 (")
	assert.Contains(t, errOut, "done post-build: \"C:/Tools/up load.exe\" -quiet (")
}

func TestBuildCommand_RunFollowsSavedOrder(t *testing.T) {
	t.Parallel()
	r, te := newConfiguredRegistry(t)
	for _, line := range []string{"a.bat", "b.bat"} {
		mustRun(t, r, "event", "pre", "add", line)
		mustRun(t, r, "event", "pre", "enable", line)
	}
	// Saving sorts enabled events by descending id, so the later event runs
	// first whatever the list order is.
	assert.Equal(t, "[x] a.bat\n[x] b.bat\n", mustRun(t, r, "event", "pre", "list"))

	_, errOut, err := runIn(t, r, "build", "-run")
	require.NoError(t, err, errOut)
	assert.Equal(t, []string{"b.bat", "a.bat", "C:/UE/Engine/Build/BatchFiles/RunUAT.bat"}, te.runner.programs())
}

func TestBuildCommand_RunStopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	r, te := newConfiguredRegistry(t)
	for _, line := range []string{"a.bat", "b.bat"} {
		mustRun(t, r, "event", "pre", "add", line)
		mustRun(t, r, "event", "pre", "enable", line)
	}
	mustRun(t, r, "event", "post", "add", "c.bat")
	mustRun(t, r, "event", "post", "enable", "c.bat")
	te.runner.failOn = "b.bat"

	_, errOut, err := runIn(t, r, "build", "-run")
	require.Error(t, err)
	assert.EqualError(t, err, "pre-build: b.bat: boom")
	assert.Contains(t, errOut, "FAILED pre-build: b.bat: boom\n")
	assert.Contains(t, errOut, "skipped 2 remaining step(s)\n")
	assert.Equal(t, []string{"b.bat"}, te.runner.programs())
}

// stageRunner records when each program finishes. Pre-build events are
// slow, so a build started early would finish first.
type stageRunner struct {
	mu       sync.Mutex
	finished []string
}

func (r *stageRunner) Run(ctx context.Context, p uat.Program) error {
	if strings.HasSuffix(p.Path, ".bat") && !strings.HasSuffix(p.Path, "RunUAT.bat") {
		select {
		case <-time.After(50 * time.Millisecond):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finished = append(r.finished, p.Path)
	return nil
}

func TestBuildCommand_RunKeepsStagesOrderedWithWorkers(t *testing.T) {
	t.Parallel()
	r, te := newConfiguredRegistry(t)
	for _, line := range []string{"a.bat", "b.bat"} {
		mustRun(t, r, "event", "pre", "add", line)
		mustRun(t, r, "event", "pre", "enable", line)
	}
	mustRun(t, r, "event", "post", "add", "c.bat")
	mustRun(t, r, "event", "post", "enable", "c.bat")

	runner := &stageRunner{}
	te.env.Runner = runner
	te.env.Workers = 4

	_, errOut, err := runIn(t, r, "build", "-run")
	require.NoError(t, err, errOut)
	require.Len(t, runner.finished, 4)
	assert.ElementsMatch(t, []string{"a.bat", "b.bat"}, runner.finished[:2])
	assert.Equal(t, []string{"C:/UE/Engine/Build/BatchFiles/RunUAT.bat", "c.bat"}, runner.finished[2:])
}

func TestBuildCommand_InvalidConfiguration(t *testing.T) {
	t.Parallel()
	env, te := newTestEnv(t)
	r := NewDefaultRegistry(env, nil, "", "test")
	mustRun(t, r, "init")

	out, _, err := runIn(t, r, "build", "-copy", "-run")
	assert.EqualError(t, err, "Invalid Main Directory")
	assert.Empty(t, out)
	assert.Empty(t, te.copied)
	assert.Empty(t, te.runner.programs())
}

func TestStatusAndDiffCommands(t *testing.T) {
	t.Parallel()
	r, te := newConfiguredRegistry(t)

	assert.Equal(t, "UATHelperDefault.json: clean\n", mustRun(t, r, "status"))
	assert.Empty(t, mustRun(t, r, "diff"))

	data, err := te.backend.Read(testFile)
	require.NoError(t, err)
	require.NoError(t, te.backend.Write(testFile, bytes.ReplaceAll(data, []byte("    "), []byte("\t"))))

	assert.Equal(t, "UATHelperDefault.json*: modified\n", mustRun(t, r, "status"))
	diff := mustRun(t, r, "diff")
	assert.Contains(t, diff, "--- UATHelperDefault.json\n")
	assert.Contains(t, diff, "+++ UATHelperDefault.json (canonical)\n")

	// Saving through any edit canonicalizes the file again.
	mustRun(t, r, "switch", "disable", "pak")
	assert.Equal(t, "UATHelperDefault.json: clean\n", mustRun(t, r, "status"))
}

func TestFilesAndSelectFileCommands(t *testing.T) {
	t.Parallel()
	env, _ := newTestEnv(t)
	r := NewDefaultRegistry(env, nil, "", "test")

	assert.Equal(t, "No configuration files found (use 'init' to create one)\n", mustRun(t, r, "files"))

	mustRun(t, r, "init")
	assert.Equal(t, "* 0  Default  UATHelperDefault.json\n", mustRun(t, r, "files"))

	mustRun(t, r, "init", "-name", "Nightly", "-no-select")
	assert.Equal(t, "Current file: UATHelperNightly.json\n", mustRun(t, r, "select-file", "Nightly"))
	assert.Equal(t, "Current file: UATHelperDefault.json\n", mustRun(t, r, "select-file", "0"))
	assert.Equal(t, "Current file: UATHelperNightly.json\n", mustRun(t, r, "select-file", "UATHelperNightly.json"))
	assert.Equal(t, "  0  Default  UATHelperDefault.json\n* 1  Nightly  UATHelperNightly.json\n", mustRun(t, r, "files"))

	_, _, err := runIn(t, r, "select-file", "5")
	assert.ErrorContains(t, err, "out of range")
	_, _, err = runIn(t, r, "select-file", "Missing")
	assert.ErrorContains(t, err, "UATHelperMissing.json not found")
	_, _, err = runIn(t, r, "select-file")
	assert.ErrorIs(t, err, errUsage)
}

func TestAppCommand(t *testing.T) {
	t.Parallel()
	env, te := newTestEnv(t)
	r := NewDefaultRegistry(env, nil, "", "test")

	assert.Equal(t, "color: 0\nstyle: 0\nups: 60\nconfig-dir: \nrevision: 1.3\n", mustRun(t, r, "app"))
	assert.Equal(t, "60\n", mustRun(t, r, "app", "ups"))

	assert.Equal(t, "color: 7\n", mustRun(t, r, "app", "color", "99"))
	assert.Equal(t, "ups: 30\n", mustRun(t, r, "app", "ups", "30"))

	data, err := te.backend.Read("UATHelper.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Color Selection": 7`)
	assert.Contains(t, string(data), `"Updates Per Second": 30`)

	_, _, err = runIn(t, r, "app", "revision", "2.0")
	assert.ErrorContains(t, err, "read-only")
	_, _, err = runIn(t, r, "app", "theme")
	assert.ErrorContains(t, err, "unknown app setting: theme")
	_, _, err = runIn(t, r, "app", "ups", "fast")
	assert.ErrorContains(t, err, `invalid number "fast"`)
	assert.Equal(t, "30\n", mustRun(t, r, "app", "ups"))
}
