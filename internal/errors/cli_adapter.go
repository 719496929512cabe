package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Process exit codes.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if ge, ok := As(err); ok && ge.Category == CategoryBuild {
		if code, ok := ge.Context[ContextExitCode].(int); ok && code != 0 {
			return code
		}
	}

	return ExitFailure
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if ge, ok := As(err); ok {
		return a.formatGuard(ge)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatGuard formats a GuardError for display.
func (a *CLIErrorAdapter) formatGuard(err *GuardError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryToolchain, CategoryBuild:
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// Report writes the error to w and returns the exit code the process should use.
func (a *CLIErrorAdapter) Report(w io.Writer, err error) int {
	if err == nil {
		return ExitSuccess
	}

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintln(w, a.FormatError(err))
	return a.ExitCodeFor(err)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if ge, ok := As(err); ok {
		return ge.Category == CategoryInternal || ge.Category == CategoryFileSystem
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if ge, ok := As(err); ok {
		attrs := []slog.Attr{
			slog.String("category", string(ge.Category)),
		}
		for k, v := range ge.Context {
			attrs = append(attrs, slog.Any(k, v))
		}
		if ge.Cause != nil {
			attrs = append(attrs, slog.String("cause", ge.Cause.Error()))
		}
		a.logger.LogAttrs(context.Background(), a.levelFor(ge.Severity), ge.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// levelFor converts GuardError severity to slog level.
func (a *CLIErrorAdapter) levelFor(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
