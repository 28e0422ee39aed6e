package rclone

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rclone/rclone/fs"
	"github.com/rclone/rclone/fs/operations"
	"github.com/spf13/afero"

	"github.com/nuln/sstream"
)

// Auto-register rclone factory driver.
func init() {
	sstream.Register("rclone", func(cfg *sstream.Config) (sstream.Factory, error) {
		remote := ""
		if v, ok := cfg.Options["remote"]; ok {
			remote, _ = v.(string)
		}
		if remote == "" {
			remote = cfg.BasePath
		}
		if remote == "" {
			return nil, fmt.Errorf("sstream/rclone: remote path is required (set Options[\"remote\"] or BasePath)")
		}
		return New(remote)
	})
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger used to trace stream creation and uploads.
// If logger is nil, logging is disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithContext sets the context used for remote calls. It defaults to
// context.Background().
func WithContext(ctx context.Context) Option {
	return func(f *Factory) {
		f.ctx = ctx
	}
}

// Factory implements sstream.Factory on top of an rclone fs.Fs.
//
// Rclone objects support neither seeking nor partial writes, so a file
// stream works on an in-memory spool: the object is downloaded when the
// stream is created and uploaded again on Close if it was written to,
// truncated or newly created. New objects become visible on the remote
// only after Close.
type Factory struct {
	remote fs.Fs
	ctx    context.Context
	logger *slog.Logger
}

// New creates a Factory from a remote path (e.g., "gdrive:backup" or a local
// directory). The matching rclone backend must be imported.
func New(remotePath string, opts ...Option) (*Factory, error) {
	f := &Factory{ctx: context.Background()}
	for _, opt := range opts {
		opt(f)
	}
	if err := f.ctx.Err(); err != nil {
		return nil, err
	}
	remote, err := fs.NewFs(f.ctx, remotePath)
	if err != nil {
		return nil, err
	}
	f.remote = remote
	return f, nil
}

func (f *Factory) CreateStream(content string) sstream.Stream {
	f.debug("create stream", "source", "string", "size", len(content))
	return sstream.FromString(content)
}

func (f *Factory) CreateStreamFromFile(name, mode string) (sstream.Stream, error) {
	m, err := sstream.ParseMode(mode)
	if err != nil {
		return nil, err
	}
	p := cleanPath(name)
	if p == "" {
		return nil, sstream.NewError(sstream.KindUnavailable, "open", name, errors.New("empty file name"))
	}

	var existing []byte
	obj, err := f.remote.NewObject(f.ctx, p)
	exists := err == nil
	switch {
	case exists:
		if m.Exclusive() {
			return nil, sstream.NewError(sstream.KindUnavailable, "open", name, os.ErrExist)
		}
		if !m.Truncate() {
			if existing, err = download(f.ctx, obj); err != nil {
				return nil, sstream.NewError(sstream.KindUnavailable, "open", name, err)
			}
		}
	case isNotFound(err):
		if !m.Create() {
			return nil, sstream.NewError(sstream.KindUnavailable, "open", name, convertError(err))
		}
	default:
		return nil, sstream.NewError(sstream.KindUnavailable, "open", name, err)
	}

	spool := afero.NewMemMapFs()
	if err := afero.WriteFile(spool, p, existing, 0600); err != nil {
		return nil, sstream.NewError(sstream.KindUnavailable, "open", name, err)
	}
	h, err := spool.OpenFile(p, m.Flag()&^os.O_EXCL, 0600)
	if err != nil {
		return nil, sstream.NewError(sstream.KindUnavailable, "open", name, err)
	}

	f.debug("create stream", "source", "file", "path", p, "mode", mode)
	if !m.Writable() {
		return sstream.NewStream(h, m), nil
	}
	// Truncation and creation take effect even when nothing is written.
	mustUpload := m.Truncate() || !exists
	return sstream.NewStream(h, m, sstream.OnClose(func(_ sstream.Handle, modified bool) error {
		if !modified && !mustUpload {
			return nil
		}
		return f.upload(spool, p)
	})), nil
}

func (f *Factory) CreateStreamFromResource(h sstream.Handle) (sstream.Stream, error) {
	if h == nil {
		return nil, sstream.NewError(sstream.KindInvalidArgument, "wrap", "", errors.New("nil handle"))
	}
	s := sstream.NewResourceStream(h)
	f.debug("create stream", "source", "resource", "name", h.Name(), "mode", s.Mode().String())
	return s, nil
}

// upload writes the spooled content of p back to the remote.
func (f *Factory) upload(spool afero.Fs, p string) error {
	data, err := afero.ReadFile(spool, p)
	if err != nil {
		return sstream.NewError(sstream.KindUnavailable, "close", p, err)
	}
	rc := io.NopCloser(bytes.NewReader(data))
	if _, err := operations.Rcat(f.ctx, f.remote, p, rc, time.Now(), nil); err != nil {
		return sstream.NewError(sstream.KindUnavailable, "close", p, err)
	}
	f.debug("uploaded", "path", p, "size", len(data))
	return nil
}

func (f *Factory) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug("sstream/rclone: "+msg, args...)
	}
}

// Helpers

func download(ctx context.Context, obj fs.Object) ([]byte, error) {
	rc, err := obj.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

// cleanPath normalizes a path to an rclone remote name.
// e.g. "/dir/file.txt" → "dir/file.txt"
func cleanPath(p string) string {
	if p == "" {
		return ""
	}
	clean := path.Clean(filepath.ToSlash(p))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return ""
	}
	return clean
}

func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrorObjectNotFound) || errors.Is(err, fs.ErrorDirNotFound)
}

func convertError(err error) error {
	if isNotFound(err) {
		return fmt.Errorf("%w: %v", os.ErrNotExist, err)
	}
	return err
}

// Compile-time interface check.
var _ sstream.Factory = (*Factory)(nil)
