//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package sstream

import "os"

func osFileMode(*os.File) (Mode, bool) { return Mode{}, false }
