package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "abc", RunID("abc")},
		{"Root", KeyRoot, "/docs", Root("/docs")},
		{"Artifact", KeyArtifact, "/docs/pkg/x.js", Artifact("/docs/pkg/x.js")},
		{"Toolchain", KeyToolchain, "wasm-pack", Toolchain("wasm-pack")},
		{"Signal", KeySignal, "killed", Signal("killed")},
		{"Outcome", KeyOutcome, "built", Outcome("built")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Fatalf("%s key mismatch: got %s want %s", c.name, c.attr.Key, c.attrKey)
		}
		if c.attr.Value.String() != c.attrVal {
			t.Fatalf("%s value mismatch: got %s want %s", c.name, c.attr.Value.String(), c.attrVal)
		}
	}
}

func TestNumericHelpers(t *testing.T) {
	if a := ExitCode(2); a.Key != KeyExitCode || a.Value.Int64() != 2 {
		t.Fatalf("ExitCode attr = %v", a)
	}
	if a := DurationMS(1.5); a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("DurationMS attr = %v", a)
	}
}

func TestElapsed(t *testing.T) {
	a := Elapsed(1500 * time.Microsecond)
	if a.Key != KeyDurationMS || a.Value.Float64() != 1.5 {
		t.Fatalf("Elapsed attr = %v", a)
	}
	if a := Elapsed(2 * time.Second); a.Value.Float64() != 2000 {
		t.Fatalf("Elapsed(2s) = %v, want 2000", a.Value.Float64())
	}
}

func TestErrorHelper(t *testing.T) {
	if a := Error(nil); a.Value.String() != "" {
		t.Fatalf("nil error should render empty, got %q", a.Value.String())
	}
	if a := Error(errors.New("boom")); a.Key != KeyError || a.Value.String() != "boom" {
		t.Fatalf("Error attr = %v", a)
	}
}
