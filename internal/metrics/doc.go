// Package metrics records guard outcomes and toolchain timings.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// nil-check. When a textfile path is configured the CLI swaps in a
// PrometheusRecorder and writes its registry with WriteTextfile at exit, for
// pickup by a node-exporter textfile collector on the CI host.
package metrics
