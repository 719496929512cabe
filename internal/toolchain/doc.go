// Package toolchain runs the external wasm-pack toolchain as a blocking
// subprocess and reports how it terminated.
//
// A Result carries either a numeric exit code, a terminating signal, or a
// launch error. Callers map a missing exit code to a generic failure (see
// Result.Code).
package toolchain
