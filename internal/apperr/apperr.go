// Package apperr enumerates the failure kinds that abort oscamp and maps
// them to exit codes for the top-level handler.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a fatal error.
type Kind int

const (
	Unknown Kind = iota
	Usage
	RegistryUnreadable
	TerminalUnavailable
	WatcherUnavailable
	ProcessSpawnFailed
	ExerciseNotFound
)

// String returns the string representation of a kind
func (k Kind) String() string {
	switch k {
	case Usage:
		return "usage"
	case RegistryUnreadable:
		return "registry unreadable"
	case TerminalUnavailable:
		return "terminal unavailable"
	case WatcherUnavailable:
		return "watcher unavailable"
	case ProcessSpawnFailed:
		return "process spawn failed"
	case ExerciseNotFound:
		return "exercise not found"
	default:
		return "unknown"
	}
}

// ExitCode is the process exit status reported for the kind.
func (k Kind) ExitCode() int {
	switch k {
	case Usage:
		return 2
	case ExerciseNotFound:
		return 3
	case RegistryUnreadable:
		return 4
	case TerminalUnavailable:
		return 5
	case WatcherUnavailable:
		return 6
	case ProcessSpawnFailed:
		return 7
	default:
		return 1
	}
}

// Error is a classified error. Op names the operation that failed.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Op != "":
		return e.Op
	default:
		return e.Kind.String()
	}
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with a kind and operation.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds a classified error from a format string. %w is honoured.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// ExitCode maps err to a process exit status. nil maps to 0.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return KindOf(err).ExitCode()
}
