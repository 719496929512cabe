package toolchain

import (
	"context"
	"io"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/ensure-pkg/internal/logfields"
)

// DefaultBinary is the toolchain executable looked up on PATH.
const DefaultBinary = "wasm-pack"

// BuildSpec holds the fixed build selectors passed to the toolchain.
type BuildSpec struct {
	Target  string // target environment, e.g. "web"
	OutDir  string // output directory, relative to the build dir
	OutName string // output name (file stem)
	Release bool
}

// VersionArgs returns the version-query argument vector.
func VersionArgs() []string {
	return []string{"--version"}
}

// BuildArgs returns the build argument vector for spec.
func BuildArgs(spec BuildSpec) []string {
	args := []string{"build", "--target", spec.Target, "--out-dir", spec.OutDir, "--out-name", spec.OutName}
	if spec.Release {
		args = append(args, "--release")
	}
	return args
}

// Toolchain invokes the external build toolchain through a Runner.
type Toolchain struct {
	binary string
	runner Runner
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// New creates a Toolchain for binary. A nil runner uses ExecRunner.
func New(binary string, runner Runner) *Toolchain {
	if binary == "" {
		binary = DefaultBinary
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Toolchain{binary: binary, runner: runner}
}

// WithStdio connects the build's standard streams, normally to the
// gate's own so progress is visible live.
func (t *Toolchain) WithStdio(stdin io.Reader, stdout, stderr io.Writer) *Toolchain {
	t.stdin = stdin
	t.stdout = stdout
	t.stderr = stderr
	return t
}

// Binary returns the configured executable name.
func (t *Toolchain) Binary() string { return t.binary }

// Available runs the version query with output discarded. A non-zero exit or
// a launch failure means the toolchain is unavailable.
func (t *Toolchain) Available(ctx context.Context) (bool, Result) {
	start := time.Now()
	res := t.runner.Run(ctx, Invocation{Name: t.binary, Args: VersionArgs()})
	slog.Debug("Toolchain version query finished",
		logfields.Toolchain(t.binary),
		slog.Bool("available", res.Success()),
		logfields.Elapsed(time.Since(start)),
		logfields.Error(res.Err))
	return res.Success(), res
}

// Build runs the toolchain build in dir with stdio attached and returns its
// termination status verbatim.
func (t *Toolchain) Build(ctx context.Context, dir string, spec BuildSpec) Result {
	args := BuildArgs(spec)
	slog.Debug("Running toolchain build", logfields.Toolchain(t.binary), logfields.Args(args), logfields.Path(dir))
	return t.runner.Run(ctx, Invocation{
		Name:   t.binary,
		Args:   args,
		Dir:    dir,
		Stdin:  t.stdin,
		Stdout: t.stdout,
		Stderr: t.stderr,
	})
}
