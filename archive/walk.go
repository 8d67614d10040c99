// Package archive visits documents stored in zip archives.
package archive

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/encoding"
)

// Entry is a regular file found in archive.
type Entry struct {
	Archive string // path to the archive on disk
	Name    string // slash separated entry name, decoded if necessary
	File    *zip.File
}

// Open returns reader for entry content.
func (e *Entry) Open() (io.ReadCloser, error) {
	return e.File.Open()
}

// WalkFunc is called for every selected entry. Returned error stops the walk
// and is passed through to the Walk caller.
type WalkFunc func(ctx context.Context, e *Entry) error

type walker struct {
	log   *zap.Logger
	names encoding.Encoding
}

// Option modifies Walk behavior.
type Option func(*walker)

// WithNameDecoder makes Walk decode entry names which are not flagged as UTF-8
// from enc. Many archivers store names in local code page.
func WithNameDecoder(enc encoding.Encoding) Option {
	return func(w *walker) {
		w.names = enc
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(w *walker) {
		w.log = log
	}
}

// Walk calls fn for every regular file in archive located under prefix, in
// archive order. Prefix is matched on whole path segments: "api" selects
// "api/users.xml" (and "api" itself) but not "apis/users.xml". Empty prefix
// selects everything.
//
// Entries with absolute names or ".." segments would escape destination
// directory when mirrored, they are skipped with a warning.
func Walk(ctx context.Context, archive, prefix string, fn WalkFunc, opts ...Option) error {
	w := &walker{log: zap.NewNop()}
	for _, opt := range opts {
		opt(w)
	}

	// insecure names are handled below, entry by entry
	r, err := zip.OpenReader(archive)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return err
	}
	defer r.Close()

	prefix = strings.Trim(prefix, "/")
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := w.name(f)
		if !isSafePath(name) {
			w.log.Warn("Skipping archive entry with unsafe path", zap.String("archive", archive), zap.String("name", name))
			continue
		}
		if f.FileInfo().IsDir() || !under(name, prefix) {
			continue
		}
		if err := fn(ctx, &Entry{Archive: archive, Name: name, File: f}); err != nil {
			return err
		}
	}
	return nil
}

func (w *walker) name(f *zip.File) string {
	if w.names == nil || !f.NonUTF8 {
		return f.Name
	}
	name, err := w.names.NewDecoder().String(f.Name)
	if err != nil {
		w.log.Warn("Unable to decode archive entry name, using as is", zap.String("name", f.Name), zap.Error(err))
		return f.Name
	}
	return name
}

func under(name, prefix string) bool {
	if len(prefix) == 0 {
		return true
	}
	return name == prefix || strings.HasPrefix(name, prefix+"/")
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(strings.ReplaceAll(name, `\`, "/"), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
