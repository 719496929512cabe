package metrics

import "time"

// OutcomeLabel enumerates terminal guard outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSkipped          OutcomeLabel = "skipped"
	OutcomeBuilt            OutcomeLabel = "built"
	OutcomeToolchainMissing OutcomeLabel = "toolchain_missing"
	OutcomeBuildFailed      OutcomeLabel = "build_failed"
)

// Recorder defines observability hooks for a guard run.
type Recorder interface {
	IncOutcome(outcome OutcomeLabel)
	ObserveProbeDuration(d time.Duration)
	ObserveBuildDuration(d time.Duration)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncOutcome(OutcomeLabel)            {}
func (NoopRecorder) ObserveProbeDuration(time.Duration) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration) {}
