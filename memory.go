package sstream

import (
	"io"

	"github.com/spf13/afero/mem"
)

// memoryName is the name reported by in-memory handles.
const memoryName = "sstream://memory"

// FromString returns a read-write stream over an in-memory copy of content
// with the cursor at the start. No filesystem is involved.
func FromString(content string) *HandleStream {
	f := mem.NewFileHandle(mem.CreateFile(memoryName))
	// Writes and seeks on a fresh in-memory file cannot fail.
	_, _ = f.WriteString(content)
	_, _ = f.Seek(0, io.SeekStart)
	return NewStream(f, MustParseMode("w+"))
}
