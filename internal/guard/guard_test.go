package guard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/ensure-pkg/internal/config"
	guarderrors "git.home.luguber.info/inful/ensure-pkg/internal/errors"
	"git.home.luguber.info/inful/ensure-pkg/internal/git"
	"git.home.luguber.info/inful/ensure-pkg/internal/metrics"
	"git.home.luguber.info/inful/ensure-pkg/internal/toolchain"
)

// fakeRunner answers the version query and the build with canned results.
// When createOnBuild is set a successful build writes the artifact.
type fakeRunner struct {
	probe         toolchain.Result
	build         toolchain.Result
	createOnBuild string
	calls         []toolchain.Invocation
}

func (f *fakeRunner) Run(_ context.Context, inv toolchain.Invocation) toolchain.Result {
	f.calls = append(f.calls, inv)
	if len(inv.Args) > 0 && inv.Args[0] == "--version" {
		return f.probe
	}
	if f.createOnBuild != "" && f.build.Success() {
		_ = os.MkdirAll(filepath.Dir(f.createOnBuild), 0o750)
		_ = os.WriteFile(f.createOnBuild, []byte("export {}"), 0o600)
	}
	return f.build
}

type countingRecorder struct {
	outcomes map[metrics.OutcomeLabel]int
	probes   int
	builds   int
}

func (c *countingRecorder) IncOutcome(o metrics.OutcomeLabel)  { c.outcomes[o]++ }
func (c *countingRecorder) ObserveProbeDuration(time.Duration) { c.probes++ }
func (c *countingRecorder) ObserveBuildDuration(time.Duration) { c.builds++ }

type harness struct {
	cfg      *config.Config
	runner   *fakeRunner
	recorder *countingRecorder
	stdout   bytes.Buffer
	logs     bytes.Buffer
	guard    *Guard
}

func newHarness(t *testing.T, runner *fakeRunner) *harness {
	t.Helper()
	h := &harness{
		cfg:      config.Default(t.TempDir()),
		runner:   runner,
		recorder: &countingRecorder{outcomes: map[metrics.OutcomeLabel]int{}},
	}
	tc := toolchain.New("wasm-pack", runner)
	h.guard = New(h.cfg, tc).
		WithRecorder(h.recorder).
		WithStdout(&h.stdout).
		WithLogger(slog.New(slog.NewTextHandler(&h.logs, nil)))
	h.guard.vcsStatus = func(string, string) (git.Status, error) { return git.StatusNoRepository, nil }
	return h
}

func (h *harness) createArtifact(t *testing.T) {
	t.Helper()
	path := h.cfg.ArtifactPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("export {}"), 0o600))
}

func exitCode(err error) int {
	return guarderrors.NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(io.Discard, nil))).ExitCodeFor(err)
}

func TestRun_ArtifactPresent(t *testing.T) {
	h := newHarness(t, &fakeRunner{})
	h.createArtifact(t)

	for i := 0; i < 2; i++ {
		outcome, err := h.guard.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, OutcomeSkipped, outcome)
		assert.Equal(t, 0, exitCode(err))
	}

	assert.Empty(t, h.runner.calls, "no subprocess may be spawned when the artifact exists")
	assert.Contains(t, h.stdout.String(), "Skipping wasm-pack build")
	assert.Contains(t, h.stdout.String(), h.cfg.ArtifactPath())
	assert.Equal(t, 2, h.recorder.outcomes[OutcomeSkipped])
	assert.Zero(t, h.recorder.probes)
}

func TestRun_ToolchainMissing(t *testing.T) {
	tests := []struct {
		name  string
		probe toolchain.Result
	}{
		{"non-zero exit", toolchain.Exited(127)},
		{"launch failure", toolchain.Result{Err: errors.New("exec: \"wasm-pack\": executable file not found in $PATH")}},
		{"signaled", toolchain.Result{Signal: "killed", Err: errors.New("signal: killed")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, &fakeRunner{probe: tt.probe})

			outcome, err := h.guard.Run(context.Background())
			require.Error(t, err)
			assert.Equal(t, OutcomeToolchainMissing, outcome)
			assert.Equal(t, 1, exitCode(err))
			assert.True(t, guarderrors.IsCategory(err, guarderrors.CategoryToolchain))
			assert.Contains(t, err.Error(), h.cfg.ArtifactPath())
			assert.Contains(t, err.Error(), "wasm-pack is not available")

			require.Len(t, h.runner.calls, 1, "no build subprocess may be spawned")
			assert.Equal(t, []string{"--version"}, h.runner.calls[0].Args)
			assert.Equal(t, 1, h.recorder.outcomes[OutcomeToolchainMissing])
			assert.Equal(t, 1, h.recorder.probes)
			assert.Zero(t, h.recorder.builds)
		})
	}
}

func TestRun_BuildSucceeds(t *testing.T) {
	runner := &fakeRunner{probe: toolchain.Exited(0), build: toolchain.Exited(0)}
	h := newHarness(t, runner)
	runner.createOnBuild = h.cfg.ArtifactPath()

	outcome, err := h.guard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeBuilt, outcome)
	assert.Equal(t, 0, exitCode(err))
	assert.FileExists(t, h.cfg.ArtifactPath())

	require.Len(t, runner.calls, 2)
	build := runner.calls[1]
	assert.Equal(t, "wasm-pack", build.Name)
	assert.Equal(t, h.cfg.Root, build.Dir, "build must run in the docs root")
	assert.Equal(t, []string{"build", "--target", "web", "--out-dir", "pkg", "--out-name", "bahlilui_docs"}, build.Args)
	assert.Equal(t, 1, h.recorder.builds)
	assert.Equal(t, 1, h.recorder.outcomes[OutcomeBuilt])
	assert.Empty(t, h.logs.String(), "nothing is logged at info level on success")

	// A second run sees the artifact and spawns nothing.
	outcome, err = h.guard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeSkipped, outcome)
	assert.Len(t, runner.calls, 2)
}

func TestRun_BuildFails(t *testing.T) {
	tests := []struct {
		name     string
		build    toolchain.Result
		wantCode int
	}{
		{"exit 2", toolchain.Exited(2), 2},
		{"exit 1", toolchain.Exited(1), 1},
		{"exit 101", toolchain.Exited(101), 101},
		{"killed by signal", toolchain.Result{Signal: "killed", Err: errors.New("signal: killed")}, 1},
		{"vanished before build", toolchain.Result{Err: errors.New("exec: not found")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, &fakeRunner{probe: toolchain.Exited(0), build: tt.build})

			outcome, err := h.guard.Run(context.Background())
			require.Error(t, err)
			assert.Equal(t, OutcomeBuildFailed, outcome)
			assert.Equal(t, tt.wantCode, exitCode(err))
			assert.True(t, guarderrors.IsCategory(err, guarderrors.CategoryBuild))
			assert.Contains(t, err.Error(), "wasm-pack build failed")
			assert.Equal(t, 1, h.recorder.outcomes[OutcomeBuildFailed])
		})
	}
}

func TestRun_ReleaseProfile(t *testing.T) {
	runner := &fakeRunner{probe: toolchain.Exited(0), build: toolchain.Exited(0)}
	h := newHarness(t, runner)
	h.cfg.Toolchain.Release = true
	runner.createOnBuild = h.cfg.ArtifactPath()

	_, err := h.guard.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, runner.calls, 2)
	assert.Contains(t, runner.calls[1].Args, "--release")
}

func TestRun_WarnsWhenArtifactUncommitted(t *testing.T) {
	runner := &fakeRunner{probe: toolchain.Exited(0), build: toolchain.Exited(0)}
	h := newHarness(t, runner)
	runner.createOnBuild = h.cfg.ArtifactPath()
	h.guard.vcsStatus = func(dir, path string) (git.Status, error) {
		assert.Equal(t, h.cfg.Root, dir)
		assert.Equal(t, h.cfg.ArtifactPath(), path)
		return git.StatusUntracked, nil
	}

	outcome, err := h.guard.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeBuilt, outcome)
	assert.Contains(t, h.logs.String(), "not committed")
}

func TestRun_WarnsWhenBuildProducesNothing(t *testing.T) {
	h := newHarness(t, &fakeRunner{probe: toolchain.Exited(0), build: toolchain.Exited(0)})
	h.guard.vcsStatus = func(string, string) (git.Status, error) {
		t.Fatal("git must not be consulted when the artifact is missing")
		return "", nil
	}

	outcome, err := h.guard.Run(context.Background())
	require.NoError(t, err, "exit status follows the toolchain")
	assert.Equal(t, OutcomeBuilt, outcome)
	assert.Contains(t, h.logs.String(), "artifact is still missing")
}

func TestRun_StatErrorCountsAsAbsent(t *testing.T) {
	h := newHarness(t, &fakeRunner{probe: toolchain.Exited(1)})
	h.guard.stat = func(string) (os.FileInfo, error) { return nil, os.ErrPermission }

	outcome, err := h.guard.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, OutcomeToolchainMissing, outcome)
}
