// Package sink persists rendered artifacts.
package sink

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// WriteError reports a failure to persist an artifact.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

const defaultMode os.FileMode = 0o644

type chmoder interface {
	Chmod(name string, mode os.FileMode) error
}

// Writer replaces destination files atomically.
type Writer struct {
	fs billy.Filesystem
	// host is set when fs is rooted at "/"; relative destinations are
	// resolved against the working directory.
	host bool
}

// NewWriter returns a Writer over fs. A nil fs means the host filesystem.
func NewWriter(fs billy.Filesystem) *Writer {
	if fs == nil {
		return &Writer{fs: osfs.New("/"), host: true}
	}
	return &Writer{fs: fs}
}

// Write makes content the entire content of path. The content lands in a
// temp file next to path which is then renamed over it, so readers see
// either the old file or the complete new one.
func (w *Writer) Write(path, content string) error {
	name := path
	if w.host {
		abs, err := filepath.Abs(path)
		if err != nil {
			return &WriteError{Path: path, Err: err}
		}
		name = abs
	}

	mode := defaultMode
	if info, err := w.fs.Stat(name); err == nil {
		if info.IsDir() {
			return &WriteError{Path: path, Err: errors.New("is a directory")}
		}
		mode = info.Mode().Perm()
	}

	tmp, err := w.fs.TempFile(filepath.Dir(name), ".astdump-")
	if err != nil {
		return &WriteError{Path: path, Err: fmt.Errorf("create temp file: %w", err)}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write([]byte(content)); err != nil {
		_ = tmp.Close()
		_ = w.fs.Remove(tmpName) // best-effort cleanup
		return &WriteError{Path: path, Err: fmt.Errorf("write temp: %w", err)}
	}
	if err := tmp.Close(); err != nil {
		_ = w.fs.Remove(tmpName) // best-effort cleanup
		return &WriteError{Path: path, Err: fmt.Errorf("close temp: %w", err)}
	}

	if ch, ok := w.fs.(chmoder); ok {
		_ = ch.Chmod(tmpName, mode) // best-effort permission sync
	}

	if err := w.fs.Rename(tmpName, name); err != nil {
		_ = w.fs.Remove(tmpName) // best-effort cleanup
		return &WriteError{Path: path, Err: fmt.Errorf("rename temp: %w", err)}
	}
	return nil
}
