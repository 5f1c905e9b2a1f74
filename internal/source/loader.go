// Package source reads input files into immutable in-memory documents.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"unicode/utf8"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// ErrInvalidUTF8 is wrapped by ReadError when the content is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("content is not valid UTF-8")

// ReadError reports a failure to load an input path.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Document is the full text of one input file.
type Document struct {
	Path    string
	Content []byte
}

// Text returns the document content as a string.
func (d *Document) Text() string {
	return string(d.Content)
}

// Loader reads documents from a billy filesystem.
type Loader struct {
	fs billy.Filesystem
	// host is set when fs is rooted at "/" and relative paths must be
	// resolved against the working directory first.
	host bool
}

// NewLoader returns a Loader over fs. A nil fs means the host filesystem.
func NewLoader(fs billy.Filesystem) *Loader {
	if fs == nil {
		return &Loader{fs: osfs.New("/"), host: true}
	}
	return &Loader{fs: fs}
}

func (l *Loader) resolve(path string) (string, error) {
	if !l.host {
		return path, nil
	}
	return filepath.Abs(path)
}

// Load reads the whole file at path. The content is returned as-is; no
// transcoding or BOM stripping is done.
func (l *Loader) Load(path string) (*Document, error) {
	name, err := l.resolve(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	info, err := l.fs.Stat(name)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ReadError{Path: path, Err: errors.New("is a directory")}
	}

	content, err := util.ReadFile(l.fs, name)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}
	if !utf8.Valid(content) {
		return nil, &ReadError{Path: path, Err: ErrInvalidUTF8}
	}

	return &Document{Path: path, Content: content}, nil
}
