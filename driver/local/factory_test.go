package local_test

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/nuln/sstream"
	"github.com/nuln/sstream/driver/local"
)

func TestFactory_Directory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("dir", 0750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	_, err := sstream.FromFile(local.NewWithFs(fs), "dir")
	if !errors.Is(err, sstream.ErrUnavailable) {
		t.Errorf("FromFile(dir) error = %v, want %v", err, sstream.ErrUnavailable)
	}
}

func TestFactory_ModeCheckedBeforeOpen(t *testing.T) {
	factory := local.NewWithFs(afero.NewMemMapFs())

	// Neither path exists; the mode error wins.
	if _, err := factory.CreateStreamFromFile("missing.txt", ""); !errors.Is(err, sstream.ErrInvalidArgument) {
		t.Errorf("empty mode error = %v, want %v", err, sstream.ErrInvalidArgument)
	}
	if _, err := factory.CreateStreamFromFile("", "bogus"); !errors.Is(err, sstream.ErrInvalidArgument) {
		t.Errorf("bogus mode error = %v, want %v", err, sstream.ErrInvalidArgument)
	}
}

func TestFactory_Modes(t *testing.T) {
	fs := afero.NewMemMapFs()
	factory := local.NewWithFs(fs)
	if err := afero.WriteFile(fs, "f.txt", []byte("hello"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	s, err := factory.CreateStreamFromFile("f.txt", "a")
	if err != nil {
		t.Fatalf("CreateStreamFromFile(a): %v", err)
	}
	if _, err := io.WriteString(s, " world"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	_ = s.Close()

	data, _ := afero.ReadFile(fs, "f.txt")
	if string(data) != "hello world" {
		t.Errorf("after append = %q, want %q", string(data), "hello world")
	}

	if _, err := factory.CreateStreamFromFile("f.txt", "x"); !errors.Is(err, sstream.ErrUnavailable) {
		t.Errorf("x on existing error = %v, want %v", err, sstream.ErrUnavailable)
	}

	s, err = factory.CreateStreamFromFile("f.txt", "w+")
	if err != nil {
		t.Fatalf("CreateStreamFromFile(w+): %v", err)
	}
	if got := s.String(); got != "" {
		t.Errorf("String() after w+ = %q, want empty", got)
	}
	_ = s.Close()

	s, err = factory.CreateStreamFromFile("new.txt", "c+")
	if err != nil {
		t.Fatalf("CreateStreamFromFile(c+): %v", err)
	}
	if _, err := io.WriteString(s, "created"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := s.String(); got != "created" {
		t.Errorf("String() = %q, want %q", got, "created")
	}
	_ = s.Close()
}

func TestFactory_Resource(t *testing.T) {
	factory := local.NewWithFs(afero.NewMemMapFs())
	if _, err := factory.CreateStreamFromResource(nil); !errors.Is(err, sstream.ErrInvalidArgument) {
		t.Errorf("nil handle error = %v, want %v", err, sstream.ErrInvalidArgument)
	}

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "f.txt", []byte("data"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	path := filepath.Join(t.TempDir(), "f.txt")
	if err := os.WriteFile(path, []byte("data"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	memHandle, err := fs.Open("f.txt")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	osHandle, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	// Read-only handles are refused the same way whatever backs them.
	for name, h := range map[string]sstream.Handle{"MemMapFs": memHandle, "OsFile": osHandle} {
		t.Run(name, func(t *testing.T) {
			s, err := factory.CreateStreamFromResource(h)
			if err != nil {
				t.Fatalf("CreateStreamFromResource: %v", err)
			}
			defer func() { _ = s.Close() }()

			if s.Writable() {
				t.Error("Writable() = true for a read-only handle")
			}
			_, err = s.Write([]byte("x"))
			if k := sstream.KindOf(err); k != sstream.KindNotPermitted {
				t.Errorf("Write kind = %v, want %v (%v)", k, sstream.KindNotPermitted, err)
			}
		})
	}
}

func TestFactory_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fs := afero.NewMemMapFs()
	factory := local.NewWithFs(fs, local.WithLogger(logger))
	_ = factory.CreateStream("abc").Close()
	_, _ = sstream.FromFile(factory, "missing.txt")

	for _, want := range []string{"sstream/local: create stream", "sstream/local: open failed"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log output missing %q:\n%s", want, buf.String())
		}
	}
	if factory.Fs() != fs {
		t.Error("Fs() does not return the configured filesystem")
	}
}

func TestNew_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "root")
	factory, err := local.New(root)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := afero.WriteFile(factory.Fs(), "a.txt", []byte("abc"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	s, err := sstream.FromFile(factory, "a.txt")
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	defer func() { _ = s.Close() }()
	if got := s.String(); got != "abc" {
		t.Errorf("String() = %q, want %q", got, "abc")
	}
}
