package metrics

import "time"

// testRecorder counts calls; used by tests in this package to check that
// PrometheusRecorder and NoopRecorder satisfy the same contract.
type testRecorder struct {
	outcomes       map[OutcomeLabel]int
	probeDurations int
	buildDurations int
}

func newTestRecorder() *testRecorder {
	return &testRecorder{outcomes: map[OutcomeLabel]int{}}
}

func (t *testRecorder) IncOutcome(o OutcomeLabel)            { t.outcomes[o]++ }
func (t *testRecorder) ObserveProbeDuration(_ time.Duration) { t.probeDurations++ }
func (t *testRecorder) ObserveBuildDuration(_ time.Duration) { t.buildDurations++ }

var (
	_ Recorder = NoopRecorder{}
	_ Recorder = (*PrometheusRecorder)(nil)
	_ Recorder = (*testRecorder)(nil)
)
