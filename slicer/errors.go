package slicer

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies slicer failures.
type Kind int

const (
	// KindSourceNotFound means the source sheet could not be opened or
	// decoded. Nothing has been written when it is returned.
	KindSourceNotFound Kind = iota + 1
	// KindIO means an asset could not be encoded or written.
	KindIO
	// KindConfiguration means the grid or the catalog cannot describe a
	// valid extraction. It is always reported before any cropping starts.
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindSourceNotFound:
		return "source not found"
	case KindIO:
		return "io error"
	case KindConfiguration:
		return "configuration error"
	}
	return "bad kind"
}

// Error is returned by all slicer operations.
type Error struct {
	Kind Kind
	Path string // offending file, if any
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Cause lets errors.Cause see through to the underlying error.
func (e *Error) Cause() error { return e.Err }

func configError(err error) error {
	return &Error{Kind: KindConfiguration, Err: err}
}

// Failures collects the per-asset errors of a run that continued past
// failed writes.
type Failures []error

func (f Failures) Error() string {
	msgs := make([]string, len(f))
	for i, err := range f {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("%d asset(s) failed: %s", len(f), strings.Join(msgs, "; "))
}

func (f Failures) Unwrap() []error { return f }

func isKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

func IsSourceNotFound(err error) bool { return isKind(err, KindSourceNotFound) }
func IsIO(err error) bool             { return isKind(err, KindIO) }
func IsConfiguration(err error) bool  { return isKind(err, KindConfiguration) }
