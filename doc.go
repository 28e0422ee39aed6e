// Package sstream defines a stream factory contract for Go.
//
// A [Factory] produces [Stream] values from an in-memory string, from a file
// path opened with an fopen-style mode token, or from an already open
// [Handle]. Failures are classified into three kinds so callers can branch
// on them with errors.Is:
//
//   - [ErrInvalidArgument]: malformed input detected without any I/O
//   - [ErrUnavailable]: the resource could not be opened or used
//   - [ErrNotPermitted]: the stream's access mode forbids the operation
//
// Factories are provided by driver packages which register themselves on
// import, the same way database/sql drivers do.
//
// # Supported Drivers
//
//   - local  — Files on an afero filesystem (import _ "github.com/nuln/sstream/driver/local")
//   - memory — Files on an in-memory afero filesystem (registered by the local driver)
//   - rclone — Objects on any rclone remote (import _ "github.com/nuln/sstream/driver/rclone")
//
// # Quick Start
//
//	import (
//	    "github.com/nuln/sstream"
//	    _ "github.com/nuln/sstream/driver/local"
//	)
//
//	factory, err := sstream.Open(&sstream.Config{Type: "local", BasePath: "./data"})
//	stream, err := sstream.FromFile(factory, "notes.txt")
//
// # Conformance
//
// Implementations verify themselves against the contract by running
// the sstreamtest suite from their own tests:
//
//	func TestFactory(t *testing.T) {
//	    fs := afero.NewMemMapFs()
//	    sstreamtest.FactoryTestSuite(t, fs, func(t *testing.T) sstream.Factory {
//	        return local.NewWithFs(fs)
//	    })
//	}
package sstream
