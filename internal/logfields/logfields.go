package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyRoot       = "root"
	KeyArtifact   = "artifact"
	KeyToolchain  = "toolchain"
	KeyArgs       = "args"
	KeyExitCode   = "exit_code"
	KeySignal     = "signal"
	KeyOutcome    = "outcome"
	KeyPath       = "path"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Root(p string) slog.Attr         { return slog.String(KeyRoot, p) }
func Artifact(p string) slog.Attr     { return slog.String(KeyArtifact, p) }
func Toolchain(name string) slog.Attr { return slog.String(KeyToolchain, name) }
func Args(a []string) slog.Attr       { return slog.Any(KeyArgs, a) }
func ExitCode(code int) slog.Attr     { return slog.Int(KeyExitCode, code) }
func Signal(s string) slog.Attr       { return slog.String(KeySignal, s) }
func Outcome(o string) slog.Attr      { return slog.String(KeyOutcome, o) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Elapsed records d under KeyDurationMS with sub-millisecond precision.
func Elapsed(d time.Duration) slog.Attr {
	return DurationMS(float64(d.Microseconds()) / 1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
