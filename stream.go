package sstream

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// Handle is an open file handle. *os.File and every afero.File satisfy it.
type Handle = afero.File

// Stream is a seekable byte stream created by a [Factory].
type Stream interface {
	io.ReadWriteSeeker
	io.Closer
	fmt.Stringer

	// Tell returns the current cursor position.
	Tell() (int64, error)

	// Contents returns the remaining content from the cursor to the end.
	Contents() (string, error)

	// Size returns the content size when it is known.
	Size() (int64, bool)

	// EOF reports whether a read has hit the end of the stream.
	EOF() bool

	// Rewind seeks to the start of the stream.
	Rewind() error

	Readable() bool
	Writable() bool
	Seekable() bool

	// Detach returns the underlying handle and leaves the stream unusable.
	// The caller becomes responsible for closing the handle.
	Detach() Handle
}

// Factory creates streams. Implementations are provided by driver packages.
type Factory interface {
	// CreateStream returns an in-memory read-write stream holding content,
	// with the cursor at the start. It never fails.
	CreateStream(content string) Stream

	// CreateStreamFromFile opens path with the given mode token.
	// The mode is validated before any filesystem access.
	CreateStreamFromFile(path, mode string) (Stream, error)

	// CreateStreamFromResource wraps an open handle. The stream takes over
	// the handle and keeps its current cursor position.
	CreateStreamFromResource(h Handle) (Stream, error)
}

// FromFile opens path with [DefaultMode].
func FromFile(f Factory, path string) (Stream, error) {
	return f.CreateStreamFromFile(path, DefaultMode)
}
