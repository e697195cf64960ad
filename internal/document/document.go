package document

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidEncoding is returned when a source file is not valid UTF-8.
var ErrInvalidEncoding = errors.New("content is not valid UTF-8")

// ReadError reports a failure to read a source file.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// Document is a single source file whose content is read on first use.
type Document struct {
	path string

	once    sync.Once
	content string
	err     error
}

// New returns a Document for path. The file is not touched until Read.
func New(path string) *Document {
	return &Document{path: path}
}

// Path returns the source path.
func (d *Document) Path() string { return d.path }

// Read returns the full file content as text. The file is read once and the
// result, including any error, is returned on every later call.
func (d *Document) Read() (string, error) {
	d.once.Do(func() {
		d.content, d.err = read(d.path)
	})
	return d.content, d.err
}

func read(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	if !utf8.Valid(raw) {
		return "", &ReadError{Path: path, Err: ErrInvalidEncoding}
	}
	// UTF8BOM only drops a leading byte order mark; the input is already valid.
	text, _, err := transform.Bytes(unicode.UTF8BOM.NewDecoder(), raw)
	if err != nil {
		return "", &ReadError{Path: path, Err: err}
	}
	return string(text), nil
}
