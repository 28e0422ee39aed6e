package sstream_test

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/nuln/sstream"
)

func TestError_Is(t *testing.T) {
	err := sstream.NewError(sstream.KindUnavailable, "open", "a.txt", os.ErrNotExist)

	if !errors.Is(err, sstream.ErrUnavailable) {
		t.Errorf("errors.Is(%v, ErrUnavailable) = false", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("errors.Is(%v, os.ErrNotExist) = false, cause must stay reachable", err)
	}
	if errors.Is(err, sstream.ErrInvalidArgument) || errors.Is(err, sstream.ErrNotPermitted) {
		t.Errorf("%v matches another kind", err)
	}
	want := "sstream: open a.txt: resource unavailable: file does not exist"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestError_CauseDoesNotLeakKind(t *testing.T) {
	// An os.ErrInvalid cause must not turn an I/O failure into an
	// invalid-argument failure.
	err := sstream.NewError(sstream.KindUnavailable, "open", "", os.ErrInvalid)
	if errors.Is(err, sstream.ErrInvalidArgument) {
		t.Errorf("errors.Is(%v, ErrInvalidArgument) = true", err)
	}
	if k := sstream.KindOf(err); k != sstream.KindUnavailable {
		t.Errorf("KindOf = %v, want %v", k, sstream.KindUnavailable)
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want sstream.Kind
	}{
		{"nil", nil, sstream.KindUnknown},
		{"foreign", errors.New("boom"), sstream.KindUnknown},
		{"typed", sstream.NewError(sstream.KindNotPermitted, "write", "", nil), sstream.KindNotPermitted},
		{"wrapped typed", fmt.Errorf("ctx: %w", sstream.NewError(sstream.KindInvalidArgument, "mode", "", nil)), sstream.KindInvalidArgument},
		{"sentinel", fmt.Errorf("ctx: %w", sstream.ErrUnavailable), sstream.KindUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sstream.KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestKind_String(t *testing.T) {
	tests := map[sstream.Kind]string{
		sstream.KindInvalidArgument: "invalid argument",
		sstream.KindUnavailable:     "resource unavailable",
		sstream.KindNotPermitted:    "operation not permitted",
		sstream.KindUnknown:         "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
