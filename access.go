package sstream

import (
	"io"
	"os"

	"github.com/spf13/afero"
)

var (
	readOnlyMode   = MustParseMode("r")
	readWriteMode  = MustParseMode("r+")
	writeOnlyMode  = MustParseMode("c")
	appendMode     = MustParseMode("a")
	appendPlusMode = MustParseMode("a+")
)

// ResourceMode reports the access mode of an already open handle.
//
// OS files are asked for their open flags. Other handles are checked with a
// zero-length write, which read-only handles refuse without changing any
// content; such handles are assumed readable.
func ResourceMode(h Handle) Mode {
	if b, ok := h.(*afero.BasePathFile); ok {
		h = b.File
	}
	if f, ok := h.(*os.File); ok {
		if m, ok := osFileMode(f); ok {
			return m
		}
	}
	if !acceptsWrites(h) {
		return readOnlyMode
	}
	return readWriteMode
}

func acceptsWrites(h Handle) bool {
	// Some in-memory handles pad the gap with zeros when written past the
	// end, even for an empty write.
	pos, err := h.Seek(0, io.SeekCurrent)
	if err != nil {
		return true
	}
	if info, err := h.Stat(); err == nil && pos > info.Size() {
		return true
	}
	_, err = h.Write(nil)
	return err == nil
}

// NewResourceStream wraps an open handle with the access mode it was
// opened with, see [ResourceMode].
func NewResourceStream(h Handle, opts ...StreamOption) *HandleStream {
	return NewStream(h, ResourceMode(h), opts...)
}
