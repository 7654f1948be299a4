package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrUnavailable  = errors.New("collaborator unavailable")
	ErrPersistence  = errors.New("persistence failure")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidInput ErrorKind = "invalid_input"
	KindNotFound     ErrorKind = "not_found"
	KindUnavailable  ErrorKind = "unavailable"
	KindPersistence  ErrorKind = "persistence"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// Invalid builds an invalid-input error for op.
func Invalid(op, format string, args ...any) error {
	return &OpError{Op: op, Kind: KindInvalidInput, Err: fmt.Errorf(format, args...)}
}

// NotFound builds a not-found error for op.
func NotFound(op, format string, args ...any) error {
	return &OpError{Op: op, Kind: KindNotFound, Err: fmt.Errorf(format, args...)}
}

// Unavailable builds an error for a collaborator that cannot be reached.
func Unavailable(op string, err error) error {
	return &OpError{Op: op, Kind: KindUnavailable, Err: err}
}

// Persistence builds a storage failure for the file at path.
func Persistence(op, path string, err error) error {
	return &OpError{Op: op, Kind: KindPersistence, Path: path, Err: err}
}
