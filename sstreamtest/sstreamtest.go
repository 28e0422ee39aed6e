// Package sstreamtest provides a conformance test suite for sstream.Factory
// implementations.
//
// Driver packages call it from their own tests:
//
//	func TestLocalFactory(t *testing.T) {
//	    fs := afero.NewMemMapFs()
//	    sstreamtest.FactoryTestSuite(t, fs, func(t *testing.T) sstream.Factory {
//	        return local.NewWithFs(fs)
//	    })
//	}
//
// The fixtures filesystem must be the one the factory resolves paths
// against: the suite creates its temporary files and handles there.
package sstreamtest

import (
	"errors"
	"io"
	"testing"

	"github.com/spf13/afero"

	"github.com/nuln/sstream"
)

const crumpets = "would you like some crumpets?"

// FactoryTestSuite runs every conformance test against the factories
// returned by newFactory. A fresh factory is created for each test.
func FactoryTestSuite(t *testing.T, fixtures afero.Fs, newFactory func(t *testing.T) sstream.Factory) {
	FactoryTestSuiteWithSkip(t, fixtures, newFactory, nil)
}

// FactoryTestSuiteWithSkip is like FactoryTestSuite but skips the named
// tests, e.g. "CreateStreamFromFile/CursorPosition" or a whole group such as
// "CreateStreamFromResource".
func FactoryTestSuiteWithSkip(t *testing.T, fixtures afero.Fs, newFactory func(t *testing.T) sstream.Factory, skip []string) {
	t.Helper()

	run := func(t *testing.T, group string, tests []namedTest) {
		t.Run(group, func(t *testing.T) {
			if contains(skip, group) {
				t.Skip("Skipped by factory configuration")
			}
			for _, tc := range tests {
				t.Run(tc.name, func(t *testing.T) {
					if contains(skip, group+"/"+tc.name) {
						t.Skip("Skipped by factory configuration")
					}
					tc.fn(t, fixtures, newFactory(t))
				})
			}
		})
	}

	run(t, "CreateStream", []namedTest{
		{"WithoutArgument", testCreateStreamWithoutArgument},
		{"EmptyString", testCreateStreamWithEmptyString},
		{"ASCIIString", testCreateStreamWithASCIIString},
		{"MultiByteMultiLineString", testCreateStreamWithMultiByteMultiLineString},
	})
	run(t, "CreateStreamFromFile", []namedTest{
		{"Content", testCreateStreamFromFile},
		{"NonExistingFile", testCreateStreamFromNonExistingFile},
		{"InvalidFileName", testCreateStreamFromInvalidFileName},
		{"ReadOnlyByDefault", testCreateStreamFromFileIsReadOnlyByDefault},
		{"WriteOnlyMode", testCreateStreamFromFileWithWriteOnlyMode},
		{"NoMode", testCreateStreamFromFileWithNoMode},
		{"InvalidMode", testCreateStreamFromFileWithInvalidMode},
		{"CursorPosition", testCreateStreamFromFileCursorPosition},
	})
	run(t, "CreateStreamFromResource", []namedTest{
		{"Content", testCreateStreamFromResource},
		{"CursorPosition", testCreateStreamFromResourceCursorPosition},
	})
}

type namedTest struct {
	name string
	fn   func(t *testing.T, fixtures afero.Fs, factory sstream.Factory)
}

func contains(list []string, name string) bool {
	for _, s := range list {
		if s == name {
			return true
		}
	}
	return false
}

// assertStream checks the full content of s and closes it.
func assertStream(t *testing.T, s sstream.Stream, want string) {
	t.Helper()
	if s == nil {
		t.Fatal("stream is nil")
	}
	defer func() { _ = s.Close() }()
	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

// assertKind checks that err belongs to the class of want and to no other.
func assertKind(t *testing.T, op string, err, want error) {
	t.Helper()
	if err == nil {
		t.Fatalf("%s: expected error %v, got nil", op, want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("%s: error %v is not %v", op, err, want)
	}
	for _, other := range []error{sstream.ErrInvalidArgument, sstream.ErrUnavailable, sstream.ErrNotPermitted} {
		if other != want && errors.Is(err, other) {
			t.Errorf("%s: error %v is also %v", op, err, other)
		}
	}
}

func closeStream(s sstream.Stream) {
	if s != nil {
		_ = s.Close()
	}
}

func testCreateStreamWithoutArgument(t *testing.T, _ afero.Fs, factory sstream.Factory) {
	var content string
	assertStream(t, factory.CreateStream(content), "")
}

func testCreateStreamWithEmptyString(t *testing.T, _ afero.Fs, factory sstream.Factory) {
	assertStream(t, factory.CreateStream(""), "")
}

func testCreateStreamWithASCIIString(t *testing.T, _ afero.Fs, factory sstream.Factory) {
	assertStream(t, factory.CreateStream(crumpets), crumpets)
}

func testCreateStreamWithMultiByteMultiLineString(t *testing.T, _ afero.Fs, factory sstream.Factory) {
	content := "would you\r\nlike some\n\U0001F950?"
	assertStream(t, factory.CreateStream(content), content)
}

func testCreateStreamFromFile(t *testing.T, fixtures afero.Fs, factory sstream.Factory) {
	path := TempFile(t, fixtures, crumpets)

	s, err := sstream.FromFile(factory, path)
	if err != nil {
		t.Fatalf("CreateStreamFromFile(%q): %v", path, err)
	}
	assertStream(t, s, crumpets)
}

func testCreateStreamFromNonExistingFile(t *testing.T, fixtures afero.Fs, factory sstream.Factory) {
	path := MissingFile(t, fixtures)

	s, err := sstream.FromFile(factory, path)
	closeStream(s)
	assertKind(t, "CreateStreamFromFile", err, sstream.ErrUnavailable)
}

func testCreateStreamFromInvalidFileName(t *testing.T, _ afero.Fs, factory sstream.Factory) {
	s, err := sstream.FromFile(factory, "")
	closeStream(s)
	assertKind(t, "CreateStreamFromFile", err, sstream.ErrUnavailable)
}

func testCreateStreamFromFileIsReadOnlyByDefault(t *testing.T, fixtures afero.Fs, factory sstream.Factory) {
	path := TempFile(t, fixtures, "")

	s, err := sstream.FromFile(factory, path)
	if err != nil {
		t.Fatalf("CreateStreamFromFile(%q): %v", path, err)
	}
	defer closeStream(s)

	_, err = io.WriteString(s, crumpets)
	assertKind(t, "Write", err, sstream.ErrNotPermitted)
}

func testCreateStreamFromFileWithWriteOnlyMode(t *testing.T, fixtures afero.Fs, factory sstream.Factory) {
	path := TempFile(t, fixtures, "")

	s, err := factory.CreateStreamFromFile(path, "w")
	if err != nil {
		t.Fatalf("CreateStreamFromFile(%q, %q): %v", path, "w", err)
	}
	defer closeStream(s)

	_, err = s.Read(make([]byte, 1))
	assertKind(t, "Read", err, sstream.ErrNotPermitted)
}

func testCreateStreamFromFileWithNoMode(t *testing.T, fixtures afero.Fs, factory sstream.Factory) {
	path := TempFile(t, fixtures, "")

	s, err := factory.CreateStreamFromFile(path, "")
	closeStream(s)
	assertKind(t, "CreateStreamFromFile", err, sstream.ErrInvalidArgument)
}

func testCreateStreamFromFileWithInvalidMode(t *testing.T, fixtures afero.Fs, factory sstream.Factory) {
	path := TempFile(t, fixtures, "")

	s, err := factory.CreateStreamFromFile(path, "☠")
	closeStream(s)
	assertKind(t, "CreateStreamFromFile", err, sstream.ErrInvalidArgument)
}

func testCreateStreamFromFileCursorPosition(t *testing.T, fixtures afero.Fs, factory sstream.Factory) {
	path := TempFile(t, fixtures, crumpets)
	want := OpenTell(t, fixtures, path)

	s, err := sstream.FromFile(factory, path)
	if err != nil {
		t.Fatalf("CreateStreamFromFile(%q): %v", path, err)
	}
	defer closeStream(s)

	got, err := s.Tell()
	if err != nil {
		t.Fatalf("Tell: %v", err)
	}
	if got != want {
		t.Errorf("Tell() = %d, want %d", got, want)
	}
}

func testCreateStreamFromResource(t *testing.T, fixtures afero.Fs, factory sstream.Factory) {
	h := TempHandle(t, fixtures, crumpets, 0, io.SeekStart)

	s, err := factory.CreateStreamFromResource(h)
	if err != nil {
		t.Fatalf("CreateStreamFromResource: %v", err)
	}
	assertStream(t, s, crumpets)
}

func testCreateStreamFromResourceCursorPosition(t *testing.T, fixtures afero.Fs, factory sstream.Factory) {
	cases := []struct {
		name   string
		offset int64
		whence int
		want   int64
	}{
		{"Start", 0, io.SeekStart, 0},
		{"End", 0, io.SeekEnd, int64(len(crumpets))},
		{"Middle", 15, io.SeekStart, 15},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := TempHandle(t, fixtures, crumpets, tc.offset, tc.whence)

			s, err := factory.CreateStreamFromResource(h)
			if err != nil {
				t.Fatalf("CreateStreamFromResource: %v", err)
			}
			defer closeStream(s)

			got, err := s.Tell()
			if err != nil {
				t.Fatalf("Tell: %v", err)
			}
			if got != tc.want {
				t.Errorf("Tell() = %d, want %d", got, tc.want)
			}
		})
	}
}
