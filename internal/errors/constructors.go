package errors

import "fmt"

// Convenience functions for common error patterns

// Config errors

func ConfigInvalid(path string, cause error) *GuardError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration invalid").
		WithContext("path", path)
}

func ValidationFailed(field, reason string) *GuardError {
	return New(CategoryConfig, SeverityFatal, fmt.Sprintf("invalid %s: %s", field, reason)).
		WithContext("field", field).
		WithContext("reason", reason)
}

// Filesystem errors

func RootUnresolved(cause error) *GuardError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "cannot resolve docs root")
}

// Toolchain errors

// ToolchainMissing reports a missing artifact that cannot be produced because
// the toolchain is unavailable. The message carries the remediation.
func ToolchainMissing(artifact, toolchain string, cause error) *GuardError {
	msg := fmt.Sprintf("Missing %s and %s is not available. Run %s build locally and commit pkg/ for hosted builds.",
		artifact, toolchain, toolchain)
	return Wrap(cause, CategoryToolchain, SeverityFatal, msg).
		WithContext("path", artifact).
		WithContext("toolchain", toolchain)
}

// BuildFailed reports a failed toolchain build. code is the subprocess exit
// code, or 0 when it terminated without one.
func BuildFailed(toolchain string, code int, signal string, cause error) *GuardError {
	e := Wrap(cause, CategoryBuild, SeverityFatal, fmt.Sprintf("%s build failed.", toolchain)).
		WithContext("toolchain", toolchain)
	if code != 0 {
		e.WithContext(ContextExitCode, code)
	}
	if signal != "" {
		e.WithContext(ContextSignal, signal)
	}
	return e
}
