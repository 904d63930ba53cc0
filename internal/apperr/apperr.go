// Package apperr defines the error kinds the core surfaces to callers.
//
// Timeout and OutputCapped are deliberately absent here: per spec they
// are recoverable outcomes folded into ExecutionResult, never raised as
// errors.
package apperr

import "fmt"

// Kind classifies an error raised by the core.
type Kind string

const (
	// KindLanguageUnavailable means the requested language has no
	// detected runtime on this host.
	KindLanguageUnavailable Kind = "language_unavailable"

	// KindIoError means scratch-directory creation, script write, or
	// spawn failed before the child process could start.
	KindIoError Kind = "io_error"

	// KindBadRequest means the caller's arguments were malformed
	// (neither content nor path on index, empty query on search, ...).
	KindBadRequest Kind = "bad_request"
)

// Error is the concrete error type for all three kinds.
type Error struct {
	Kind    Kind
	Message string
	Path    string // set for IoError when a filesystem path is implicated
	Err     error  // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (path=%s)", e.Kind, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is allows errors.Is(err, apperr.LanguageUnavailable) style checks
// against the sentinel Kind values below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons, e.g. errors.Is(err, apperr.LanguageUnavailable).
var (
	LanguageUnavailable = &Error{Kind: KindLanguageUnavailable}
	IoError             = &Error{Kind: KindIoError}
	BadRequest          = &Error{Kind: KindBadRequest}
)

// NewLanguageUnavailable builds a LanguageUnavailable error for the given tag.
func NewLanguageUnavailable(language string) error {
	return &Error{Kind: KindLanguageUnavailable, Message: fmt.Sprintf("no runtime detected for language %q", language)}
}

// NewIoError wraps a filesystem failure with the attempted path.
func NewIoError(path string, err error) error {
	return &Error{Kind: KindIoError, Message: "filesystem operation failed", Path: path, Err: err}
}

// NewBadRequest builds a BadRequest error with a human-readable reason.
func NewBadRequest(reason string) error {
	return &Error{Kind: KindBadRequest, Message: reason}
}
