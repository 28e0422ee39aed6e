package sstream

import (
	"fmt"
	"os"
)

// DefaultMode is the mode used by [FromFile]: read-only, cursor at start.
const DefaultMode = "r"

// Mode is a parsed fopen-style access mode token.
//
// The base character selects the behaviour:
//
//	r  read, file must exist
//	w  write, create or truncate
//	a  write at end, create
//	x  write, file must not exist
//	c  write, create, no truncation
//
// A '+' adds the missing direction. The 'b' and 't' translation flags and the
// 'e' close-on-exec flag are accepted and have no further effect.
type Mode struct {
	token string
	base  byte
	plus  bool
}

// ParseMode validates token. It never touches the filesystem, so an empty or
// unrecognized token is always reported as [ErrInvalidArgument].
func ParseMode(token string) (Mode, error) {
	if token == "" {
		return Mode{}, NewError(KindInvalidArgument, "mode", "", fmt.Errorf("empty mode"))
	}
	m := Mode{token: token, base: token[0]}
	switch m.base {
	case 'r', 'w', 'a', 'x', 'c':
	default:
		return Mode{}, NewError(KindInvalidArgument, "mode", "", fmt.Errorf("unrecognized mode %q", token))
	}

	var translation, cloexec bool
	for i := 1; i < len(token); i++ {
		var seen *bool
		switch token[i] {
		case '+':
			seen = &m.plus
		case 'b', 't':
			seen = &translation
		case 'e':
			seen = &cloexec
		default:
			return Mode{}, NewError(KindInvalidArgument, "mode", "", fmt.Errorf("unrecognized mode %q", token))
		}
		if *seen {
			return Mode{}, NewError(KindInvalidArgument, "mode", "", fmt.Errorf("unrecognized mode %q", token))
		}
		*seen = true
	}
	return m, nil
}

// MustParseMode is like [ParseMode] but panics on error.
func MustParseMode(token string) Mode {
	m, err := ParseMode(token)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Mode) String() string { return m.token }

func (m Mode) Readable() bool { return m.base == 'r' || m.plus }

func (m Mode) Writable() bool { return m.base != 'r' || m.plus }

// Append reports whether every write lands at the end of the file.
func (m Mode) Append() bool { return m.base == 'a' }

func (m Mode) Truncate() bool { return m.base == 'w' }

// Create reports whether a missing file is created on open.
func (m Mode) Create() bool { return m.base != 'r' }

// Exclusive reports whether opening must fail when the file exists.
func (m Mode) Exclusive() bool { return m.base == 'x' }

// Flag returns the os.OpenFile flags equivalent to m.
func (m Mode) Flag() int {
	var flag int
	switch {
	case m.Readable() && m.Writable():
		flag = os.O_RDWR
	case m.Writable():
		flag = os.O_WRONLY
	default:
		flag = os.O_RDONLY
	}
	if m.Create() {
		flag |= os.O_CREATE
	}
	if m.Truncate() {
		flag |= os.O_TRUNC
	}
	if m.Append() {
		flag |= os.O_APPEND
	}
	if m.Exclusive() {
		flag |= os.O_EXCL
	}
	return flag
}
