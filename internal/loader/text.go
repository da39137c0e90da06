package loader

import (
	"fmt"
	"io"
	"unicode/utf8"
)

// TextLoader handles plain text files. Line structure is preserved exactly.
type TextLoader struct{}

func (l *TextLoader) Load(r io.Reader, filename string) (*Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(src) {
		return nil, fmt.Errorf("%s is not valid UTF-8 text", filename)
	}
	return &Document{Name: filename, Text: Normalize(string(src))}, nil
}
