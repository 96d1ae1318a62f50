package cli

import (
	"errors"
	"io/fs"

	"github.com/yaklabco/mdfence/internal/configloader"
	"github.com/yaklabco/mdfence/pkg/fsutil"
	"github.com/yaklabco/mdfence/pkg/runner"
)

// Exit codes for mdfence.
const (
	// ExitSuccess indicates every language was merged.
	ExitSuccess = 0

	// ExitMergeFailures indicates the file was written but some languages were excluded.
	ExitMergeFailures = 1

	// ExitUncovered indicates check found fences without a rule set.
	ExitUncovered = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

var (
	// ErrMergeFailures is returned when one or more languages were excluded.
	ErrMergeFailures = errors.New("some languages could not be merged")

	// ErrUncoveredFences is returned by check when a fence has no rule set.
	ErrUncoveredFences = errors.New("fences without a rule set found")

	// ErrInvalidUsage is returned for invalid flag or argument combinations.
	ErrInvalidUsage = errors.New("invalid usage")

	// ErrInvalidSyntaxFile is returned by check when the rules file breaks
	// the region invariant or cannot be parsed.
	ErrInvalidSyntaxFile = errors.New("invalid syntax file")
)

// ExitCodeFromResult determines the exit code of a merge run.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitMergeFailures
	}
	return ExitSuccess
}

// ExitCodeFromError maps a command error to an exit code.
func ExitCodeFromError(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrMergeFailures):
		return ExitMergeFailures
	case errors.Is(err, ErrUncoveredFences), errors.Is(err, ErrInvalidSyntaxFile):
		return ExitUncovered
	case errors.As(err, &validationErr), errors.Is(err, configloader.ErrConfigParse):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fsutil.ErrPermissionDenied),
		errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	case errors.Is(err, ErrInvalidUsage):
		return ExitInvalidUsage
	default:
		return ExitInternalError
	}
}

// IsReported reports whether err only signals an exit code and has already
// been presented to the user.
func IsReported(err error) bool {
	return errors.Is(err, ErrMergeFailures) ||
		errors.Is(err, ErrUncoveredFences) ||
		errors.Is(err, ErrInvalidSyntaxFile)
}
