//go:build linux || darwin || freebsd || netbsd || openbsd

package sstream

import (
	"os"

	"golang.org/x/sys/unix"
)

func osFileMode(f *os.File) (Mode, bool) {
	flags, err := unix.FcntlInt(f.Fd(), unix.F_GETFL, 0)
	if err != nil {
		return Mode{}, false
	}
	appending := flags&unix.O_APPEND != 0
	switch flags & unix.O_ACCMODE {
	case unix.O_RDONLY:
		return readOnlyMode, true
	case unix.O_WRONLY:
		if appending {
			return appendMode, true
		}
		return writeOnlyMode, true
	default:
		if appending {
			return appendPlusMode, true
		}
		return readWriteMode, true
	}
}
