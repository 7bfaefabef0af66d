package ini

import (
	"io"
	"os"
	"strings"
)

// Load reads an INI document from r using the default dialect with the
// given options applied.
func Load(r io.Reader, opts ...Option) (*Document, error) {
	d, err := NewDialect(opts...)
	if err != nil {
		return nil, err
	}
	return NewReader(d).Read(r)
}

// LoadString reads an INI document from s.
func LoadString(s string, opts ...Option) (*Document, error) {
	return Load(strings.NewReader(s), opts...)
}

// LoadFile reads an INI document from the file at path.
func LoadFile(path string, opts ...Option) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &IOError{Op: "open " + path, Err: err}
	}
	defer f.Close()
	return Load(f, opts...)
}

// Write serializes doc to w using the default dialect with the given
// options applied.
func Write(w io.Writer, doc *Document, opts ...Option) error {
	d, err := NewDialect(opts...)
	if err != nil {
		return err
	}
	return NewWriter(d).Write(w, doc)
}

// WriteString serializes doc and returns the text.
func WriteString(doc *Document, opts ...Option) (string, error) {
	var b strings.Builder
	if err := Write(&b, doc, opts...); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteFile serializes doc to the file at path.
func WriteFile(path string, doc *Document, opts ...Option) error {
	f, err := os.Create(path)
	if err != nil {
		return &IOError{Op: "create " + path, Err: err}
	}
	if err := Write(f, doc, opts...); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &IOError{Op: "close " + path, Err: err}
	}
	return nil
}
