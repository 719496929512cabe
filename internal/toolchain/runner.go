package toolchain

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strconv"
	"syscall"
)

// Invocation describes a single subprocess run.
type Invocation struct {
	Name   string
	Args   []string
	Dir    string    // empty means the caller's working directory
	Stdin  io.Reader // nil means no input
	Stdout io.Writer // nil discards output
	Stderr io.Writer // nil discards output
}

// Result is the structured termination status of a subprocess.
type Result struct {
	// ExitCode is nil when the process produced no numeric exit code
	// (killed by a signal, or never started).
	ExitCode *int
	// Signal names the terminating signal, if any.
	Signal string
	// Err is the underlying error from os/exec; nil on exit 0.
	Err error
}

// Success reports a clean exit 0.
func (r Result) Success() bool {
	return r.ExitCode != nil && *r.ExitCode == 0
}

// Code returns the exit code to propagate: the process's own code when one is
// available, otherwise 1.
func (r Result) Code() int {
	if r.ExitCode != nil && *r.ExitCode != 0 {
		return *r.ExitCode
	}
	if r.Success() {
		return 0
	}
	return 1
}

// Exited builds a Result for a process that exited with code.
func Exited(code int) Result {
	r := Result{ExitCode: &code}
	if code != 0 {
		r.Err = &exitStatusError{code: code}
	}
	return r
}

type exitStatusError struct{ code int }

func (e *exitStatusError) Error() string {
	return "exit status " + strconv.Itoa(e.code)
}

// Runner executes an Invocation to completion.
type Runner interface {
	Run(ctx context.Context, inv Invocation) Result
}

// ExecRunner runs invocations with os/exec.
type ExecRunner struct{}

// Run blocks until the subprocess terminates.
func (ExecRunner) Run(ctx context.Context, inv Invocation) Result {
	// #nosec G204 -- binary and args come from configuration, not user input
	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdin = inv.Stdin
	cmd.Stdout = inv.Stdout
	cmd.Stderr = inv.Stderr

	err := cmd.Run()
	if err == nil {
		code := 0
		return Result{ExitCode: &code}
	}

	var ee *exec.ExitError
	if !errors.As(err, &ee) {
		// Never started (binary missing, not executable, bad dir).
		return Result{Err: err}
	}
	if ws, ok := ee.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Result{Signal: ws.Signal().String(), Err: err}
	}
	if code := ee.ExitCode(); code >= 0 {
		return Result{ExitCode: &code, Err: err}
	}
	return Result{Signal: "unknown", Err: err}
}
