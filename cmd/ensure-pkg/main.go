// Command ensure-pkg is the docs pre-build gate: it makes sure the generated
// WebAssembly bundle exists before the site build runs, building it with
// wasm-pack when it is missing.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/ensure-pkg/internal/config"
	guarderrors "git.home.luguber.info/inful/ensure-pkg/internal/errors"
	"git.home.luguber.info/inful/ensure-pkg/internal/guard"
	"git.home.luguber.info/inful/ensure-pkg/internal/logfields"
	"git.home.luguber.info/inful/ensure-pkg/internal/metrics"
	"git.home.luguber.info/inful/ensure-pkg/internal/toolchain"
	"git.home.luguber.info/inful/ensure-pkg/internal/version"
)

// CLI takes no arguments; the flags only affect diagnostics.
type CLI struct {
	Verbose bool `short:"v" help:"Enable verbose logging"`
	Version bool `help:"Show version and exit"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var cli CLI
	exited := -1
	parser, err := kong.New(&cli,
		kong.Name("ensure-pkg"),
		kong.Description("Ensure pkg/bahlilui_docs.js exists before the docs build, running wasm-pack if needed."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exited < 0 {
				exited = code
			}
		}),
	)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "ensure-pkg: %v\n", err)
		return guarderrors.ExitFailure
	}
	if _, err := parser.Parse(args); err != nil {
		_, _ = fmt.Fprintf(stderr, "ensure-pkg: %v\n", err)
		return guarderrors.ExitFailure
	}
	if exited >= 0 { // --help
		return exited
	}
	if cli.Version {
		_, _ = fmt.Fprintln(stdout, version.String())
		return guarderrors.ExitSuccess
	}

	logger := newLogger(stderr, cli.Verbose).With(logfields.RunID(uuid.NewString()))
	slog.SetDefault(logger)
	adapter := guarderrors.NewCLIErrorAdapter(cli.Verbose, logger)

	root, err := config.ResolveRoot()
	if err != nil {
		return adapter.Report(stderr, err)
	}
	cfg, err := config.Load(root)
	if err != nil {
		return adapter.Report(stderr, err)
	}
	logger.Debug("Configuration loaded",
		logfields.Root(cfg.Root),
		logfields.Artifact(cfg.ArtifactPath()),
		logfields.Toolchain(cfg.Toolchain.Binary))

	recorder, flush := newRecorder(cfg, logger)
	tc := toolchain.New(cfg.Toolchain.Binary, toolchain.ExecRunner{}).WithStdio(stdin, stdout, stderr)
	_, err = guard.New(cfg, tc).
		WithRecorder(recorder).
		WithLogger(logger).
		WithStdout(stdout).
		Run(context.Background())
	flush()

	return adapter.Report(stderr, err)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newRecorder returns a Prometheus recorder and a flush that writes the
// textfile when one is configured; otherwise a no-op pair.
func newRecorder(cfg *config.Config, logger *slog.Logger) (metrics.Recorder, func()) {
	path := cfg.MetricsTextfilePath()
	if path == "" {
		return metrics.NoopRecorder{}, func() {}
	}
	pr := metrics.NewPrometheusRecorder(nil)
	return pr, func() {
		if err := metrics.WriteTextfile(path, pr.Registry()); err != nil {
			logger.Warn("Failed to write metrics textfile", logfields.Path(path), logfields.Error(err))
		}
	}
}
