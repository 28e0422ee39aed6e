package sstream

import (
	"errors"
	"fmt"
	"io"
)

// HandleStream is a [Stream] over a single [Handle]. Access is enforced from
// the [Mode] the stream was created with, so a handle opened read-write at the
// OS level can still back a read-only stream.
type HandleStream struct {
	h        Handle
	name     string
	mode     Mode
	eof      bool
	modified bool
	onClose  func(h Handle, modified bool) error
}

// StreamOption configures a [HandleStream].
type StreamOption func(*HandleStream)

// OnClose registers fn to run before the handle is closed. modified reports
// whether anything was written through the stream. An error from fn is
// returned by Close, and the handle is closed regardless.
func OnClose(fn func(h Handle, modified bool) error) StreamOption {
	return func(s *HandleStream) {
		s.onClose = fn
	}
}

// NewStream wraps h. The stream owns h from now on; the cursor is left where
// it is.
func NewStream(h Handle, m Mode, opts ...StreamOption) *HandleStream {
	s := &HandleStream{h: h, name: h.Name(), mode: m}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mode returns the access mode the stream enforces.
func (s *HandleStream) Mode() Mode { return s.mode }

func (s *HandleStream) Read(p []byte) (int, error) {
	if s.h == nil {
		return 0, s.detachedErr("read")
	}
	if !s.mode.Readable() {
		return 0, NewError(KindNotPermitted, "read", s.name, fmt.Errorf("stream opened with mode %q", s.mode))
	}
	n, err := s.h.Read(p)
	if errors.Is(err, io.EOF) {
		s.eof = true
		return n, io.EOF
	}
	if err != nil {
		return n, NewError(classify(err), "read", s.name, err)
	}
	return n, nil
}

func (s *HandleStream) Write(p []byte) (int, error) {
	if s.h == nil {
		return 0, s.detachedErr("write")
	}
	if !s.mode.Writable() {
		return 0, NewError(KindNotPermitted, "write", s.name, fmt.Errorf("stream opened with mode %q", s.mode))
	}
	if s.mode.Append() {
		if _, err := s.h.Seek(0, io.SeekEnd); err != nil {
			return 0, NewError(classify(err), "write", s.name, err)
		}
	}
	s.eof = false
	n, err := s.h.Write(p)
	if n > 0 {
		s.modified = true
	}
	if err != nil {
		return n, NewError(classify(err), "write", s.name, err)
	}
	return n, nil
}

func (s *HandleStream) Seek(offset int64, whence int) (int64, error) {
	if s.h == nil {
		return 0, s.detachedErr("seek")
	}
	switch whence {
	case io.SeekStart, io.SeekCurrent, io.SeekEnd:
	default:
		return 0, NewError(KindInvalidArgument, "seek", s.name, fmt.Errorf("invalid whence %d", whence))
	}
	pos, err := s.h.Seek(offset, whence)
	if err != nil {
		return 0, NewError(classify(err), "seek", s.name, err)
	}
	s.eof = false
	return pos, nil
}

func (s *HandleStream) Tell() (int64, error) {
	if s.h == nil {
		return 0, s.detachedErr("tell")
	}
	pos, err := s.h.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, NewError(classify(err), "tell", s.name, err)
	}
	return pos, nil
}

// String returns the full content of the stream. The cursor is restored
// afterwards. It returns "" when the stream is not readable or on error.
func (s *HandleStream) String() string {
	if s.h == nil || !s.mode.Readable() {
		return ""
	}
	pos, err := s.h.Seek(0, io.SeekCurrent)
	if err != nil {
		return ""
	}
	if _, err := s.h.Seek(0, io.SeekStart); err != nil {
		return ""
	}
	data, err := io.ReadAll(s.h)
	if _, seekErr := s.h.Seek(pos, io.SeekStart); seekErr != nil || err != nil {
		return ""
	}
	return string(data)
}

func (s *HandleStream) Contents() (string, error) {
	if s.h == nil {
		return "", s.detachedErr("read")
	}
	data, err := io.ReadAll(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *HandleStream) Size() (int64, bool) {
	if s.h == nil {
		return 0, false
	}
	info, err := s.h.Stat()
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}

func (s *HandleStream) EOF() bool { return s.eof }

func (s *HandleStream) Rewind() error {
	_, err := s.Seek(0, io.SeekStart)
	return err
}

func (s *HandleStream) Readable() bool { return s.h != nil && s.mode.Readable() }

func (s *HandleStream) Writable() bool { return s.h != nil && s.mode.Writable() }

func (s *HandleStream) Seekable() bool {
	if s.h == nil {
		return false
	}
	_, err := s.h.Seek(0, io.SeekCurrent)
	return err == nil
}

// Close runs the OnClose hook and closes the handle. Closing a closed or
// detached stream is a no-op.
func (s *HandleStream) Close() error {
	if s.h == nil {
		return nil
	}
	h := s.Detach()

	var hookErr error
	if s.onClose != nil {
		hookErr = s.onClose(h, s.modified)
	}
	if err := h.Close(); err != nil {
		return errors.Join(hookErr, NewError(classify(err), "close", s.name, err))
	}
	return hookErr
}

func (s *HandleStream) Detach() Handle {
	h := s.h
	s.h = nil
	s.eof = false
	return h
}

func (s *HandleStream) detachedErr(op string) error {
	return NewError(KindUnavailable, op, s.name, errors.New("stream is closed or detached"))
}

// Compile-time interface check.
var _ Stream = (*HandleStream)(nil)
