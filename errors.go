package sstream

import (
	"errors"
	"os"
	"syscall"
)

// Error classes. They are deliberately distinct from the os package
// sentinels: a missing file is ErrUnavailable, never ErrInvalidArgument.
var (
	ErrInvalidArgument = errors.New("sstream: invalid argument")
	ErrUnavailable     = errors.New("sstream: resource unavailable")
	ErrNotPermitted    = errors.New("sstream: operation not permitted")
)

// Kind classifies a failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidArgument
	KindUnavailable
	KindNotPermitted
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindUnavailable:
		return "resource unavailable"
	case KindNotPermitted:
		return "operation not permitted"
	default:
		return "unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidArgument:
		return ErrInvalidArgument
	case KindUnavailable:
		return ErrUnavailable
	case KindNotPermitted:
		return ErrNotPermitted
	default:
		return nil
	}
}

// Error records a classified failure together with the operation and path
// that caused it.
type Error struct {
	Op   string
	Path string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	msg := "sstream: " + e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	msg += ": " + e.Kind.String()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// NewError returns a classified error.
func NewError(kind Kind, op, path string, err error) error {
	return &Error{Op: op, Path: path, Kind: kind, Err: err}
}

// KindOf returns the class of err, or KindUnknown when err is nil or was not
// produced by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.Is(err, ErrUnavailable):
		return KindUnavailable
	case errors.Is(err, ErrNotPermitted):
		return KindNotPermitted
	}
	return KindUnknown
}

// classify maps an error returned by a handle to a Kind.
func classify(err error) Kind {
	if errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EBADF) {
		return KindNotPermitted
	}
	return KindUnavailable
}
