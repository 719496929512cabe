package guard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/ensure-pkg/internal/config"
	guarderrors "git.home.luguber.info/inful/ensure-pkg/internal/errors"
	"git.home.luguber.info/inful/ensure-pkg/internal/git"
	"git.home.luguber.info/inful/ensure-pkg/internal/logfields"
	"git.home.luguber.info/inful/ensure-pkg/internal/metrics"
	"git.home.luguber.info/inful/ensure-pkg/internal/toolchain"
)

// Outcome is the terminal state of a run.
type Outcome = metrics.OutcomeLabel

const (
	OutcomeSkipped          = metrics.OutcomeSkipped
	OutcomeBuilt            = metrics.OutcomeBuilt
	OutcomeToolchainMissing = metrics.OutcomeToolchainMissing
	OutcomeBuildFailed      = metrics.OutcomeBuildFailed
)

// Guard decides once per run whether the downstream build may proceed.
type Guard struct {
	cfg       *config.Config
	toolchain *toolchain.Toolchain
	recorder  metrics.Recorder
	logger    *slog.Logger
	stdout    io.Writer
	stat      func(string) (os.FileInfo, error)
	vcsStatus func(dir, path string) (git.Status, error)
}

// New creates a Guard for cfg that builds with tc.
func New(cfg *config.Config, tc *toolchain.Toolchain) *Guard {
	return &Guard{
		cfg:       cfg,
		toolchain: tc,
		recorder:  metrics.NoopRecorder{},
		logger:    slog.Default(),
		stdout:    os.Stdout,
		stat:      os.Stat,
		vcsStatus: git.FileStatus,
	}
}

// WithRecorder injects a metrics recorder.
func (g *Guard) WithRecorder(r metrics.Recorder) *Guard {
	if r != nil {
		g.recorder = r
	}
	return g
}

// WithLogger sets the structured logger.
func (g *Guard) WithLogger(l *slog.Logger) *Guard {
	if l != nil {
		g.logger = l
	}
	return g
}

// WithStdout sets where the skip notice is printed.
func (g *Guard) WithStdout(w io.Writer) *Guard {
	if w != nil {
		g.stdout = w
	}
	return g
}

// Run executes the gate. A nil error means the downstream build may proceed.
// Failures are *errors.GuardError values whose exit code the CLI adapter
// derives.
func (g *Guard) Run(ctx context.Context) (Outcome, error) {
	outcome, err := g.run(ctx)
	g.recorder.IncOutcome(outcome)
	g.logger.Debug("Guard finished", logfields.Outcome(string(outcome)), logfields.Error(err))
	return outcome, err
}

func (g *Guard) run(ctx context.Context) (Outcome, error) {
	artifact := g.cfg.ArtifactPath()
	binary := g.toolchain.Binary()

	if g.artifactPresent(artifact) {
		_, _ = fmt.Fprintf(g.stdout, "Found pkg artifacts at %s. Skipping %s build.\n", artifact, binary)
		return OutcomeSkipped, nil
	}

	g.logger.Debug("Artifact missing, checking toolchain", logfields.Artifact(artifact), logfields.Toolchain(binary))

	start := time.Now()
	available, probe := g.toolchain.Available(ctx)
	g.recorder.ObserveProbeDuration(time.Since(start))
	if !available {
		return OutcomeToolchainMissing, guarderrors.ToolchainMissing(artifact, binary, probe.Err)
	}

	start = time.Now()
	res := g.toolchain.Build(ctx, g.cfg.Root, g.cfg.BuildSpec())
	elapsed := time.Since(start)
	g.recorder.ObserveBuildDuration(elapsed)
	if !res.Success() {
		code := 0
		if res.ExitCode != nil {
			code = *res.ExitCode
		}
		g.logger.Debug("Toolchain build failed",
			logfields.ExitCode(res.Code()),
			logfields.Signal(res.Signal),
			logfields.Error(res.Err))
		return OutcomeBuildFailed, guarderrors.BuildFailed(binary, code, res.Signal, res.Err)
	}

	g.logger.Debug("Toolchain build finished",
		logfields.Artifact(artifact),
		logfields.Elapsed(elapsed))
	g.afterBuild(artifact)
	return OutcomeBuilt, nil
}

// artifactPresent mirrors a plain existence check: any stat failure counts as absent.
func (g *Guard) artifactPresent(path string) bool {
	if _, err := g.stat(path); err != nil {
		if !os.IsNotExist(err) {
			g.logger.Debug("Artifact stat failed, treating as absent", logfields.Artifact(path), logfields.Error(err))
		}
		return false
	}
	return true
}

// afterBuild emits warnings that never change the outcome.
func (g *Guard) afterBuild(artifact string) {
	if !g.artifactPresent(artifact) {
		g.logger.Warn("Toolchain succeeded but artifact is still missing", logfields.Artifact(artifact))
		return
	}

	status, err := g.vcsStatus(g.cfg.Root, artifact)
	if err != nil {
		g.logger.Debug("Cannot inspect git index", logfields.Error(err))
		return
	}
	if status == git.StatusUntracked {
		g.logger.Warn("Built artifact is not committed; hosted builds without the toolchain will fail until pkg/ is committed",
			logfields.Artifact(artifact))
	}
}
