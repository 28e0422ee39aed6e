package local

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/nuln/sstream"
)

// Auto-register local and in-memory factory drivers.
func init() {
	sstream.Register("local", func(cfg *sstream.Config) (sstream.Factory, error) {
		return New(cfg.BasePath)
	})
	sstream.Register("memory", func(cfg *sstream.Config) (sstream.Factory, error) {
		return NewWithFs(afero.NewMemMapFs()), nil
	})
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger used to trace stream creation.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// Factory implements sstream.Factory on top of an afero filesystem.
type Factory struct {
	fs     afero.Fs
	logger *slog.Logger
}

// New creates a Factory that resolves paths under root on the local
// filesystem. The root directory is created if it does not exist.
func New(root string, opts ...Option) (*Factory, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absRoot, 0750); err != nil {
		return nil, err
	}
	return newFactory(afero.NewBasePathFs(afero.NewOsFs(), absRoot), opts), nil
}

// NewWithFs creates a Factory backed by a custom afero.Fs.
// This is useful for testing with afero.MemMapFs.
func NewWithFs(fs afero.Fs, opts ...Option) *Factory {
	return newFactory(fs, opts)
}

func newFactory(fs afero.Fs, opts []Option) *Factory {
	f := &Factory{fs: fs}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fs returns the filesystem paths are resolved against.
func (f *Factory) Fs() afero.Fs { return f.fs }

func (f *Factory) CreateStream(content string) sstream.Stream {
	f.debug("create stream", "source", "string", "size", len(content))
	return sstream.FromString(content)
}

func (f *Factory) CreateStreamFromFile(path, mode string) (sstream.Stream, error) {
	m, err := sstream.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, sstream.NewError(sstream.KindUnavailable, "open", path, errors.New("empty file name"))
	}

	h, err := f.fs.OpenFile(path, m.Flag(), 0644)
	if err != nil {
		f.debug("open failed", "path", path, "mode", mode, "error", err)
		return nil, sstream.NewError(sstream.KindUnavailable, "open", path, err)
	}
	info, err := h.Stat()
	if err != nil {
		_ = h.Close()
		return nil, sstream.NewError(sstream.KindUnavailable, "open", path, err)
	}
	if info.IsDir() {
		_ = h.Close()
		return nil, sstream.NewError(sstream.KindUnavailable, "open", path, errors.New("is a directory"))
	}

	f.debug("create stream", "source", "file", "path", path, "mode", mode)
	return sstream.NewStream(h, m), nil
}

func (f *Factory) CreateStreamFromResource(h sstream.Handle) (sstream.Stream, error) {
	if h == nil {
		return nil, sstream.NewError(sstream.KindInvalidArgument, "wrap", "", errors.New("nil handle"))
	}
	s := sstream.NewResourceStream(h)
	f.debug("create stream", "source", "resource", "name", h.Name(), "mode", s.Mode().String())
	return s, nil
}

func (f *Factory) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug("sstream/local: "+msg, args...)
	}
}

// Compile-time interface check.
var _ sstream.Factory = (*Factory)(nil)
