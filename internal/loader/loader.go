// Package loader turns uploaded files into normalized plain text whose line
// numbers are stable, plus a heading outline keyed by those line numbers.
package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dgallion1/citeshield/internal/chunker"
)

// Heading is one entry of a document outline.
type Heading struct {
	Level int    `json:"level"`
	Title string `json:"title"`
	Line  int    `json:"line"`
}

// Document is the normalized text of a file.
type Document struct {
	Name    string    `json:"name"`
	Text    string    `json:"-"`
	Outline []Heading `json:"outline"`
}

// Lines splits the document text the same way the chunker does.
func (d *Document) Lines() []string {
	return chunker.SplitLines(d.Text)
}

// Loader reads one file format.
type Loader interface {
	Load(r io.Reader, filename string) (*Document, error)
}

// Options tune format-specific behaviour.
type Options struct {
	PDFFallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	"":          true,
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the appropriate loader for a filename.
func ForFile(filename string, opts Options) (Loader, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case "", ".txt", ".text":
		return &TextLoader{}, nil
	case ".md", ".markdown":
		return &MarkdownLoader{}, nil
	case ".csv":
		return &CSVLoader{}, nil
	case ".html", ".htm":
		return &HTMLLoader{}, nil
	case ".pdf":
		return &PDFLoader{FallbackPdftotext: opts.PDFFallbackPdftotext}, nil
	case ".docx":
		return &DOCXLoader{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Extensions returns the supported extensions, sorted.
func Extensions() []string {
	var out []string
	for ext := range SupportedExtensions {
		if ext != "" {
			out = append(out, ext)
		}
	}
	sort.Strings(out)
	return out
}

// Load picks a loader for filename and reads r with it.
func Load(r io.Reader, filename string, opts Options) (*Document, error) {
	l, err := ForFile(filename, opts)
	if err != nil {
		return nil, err
	}
	doc, err := l.Load(r, filename)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filename, err)
	}
	return doc, nil
}

// LoadFile opens path and loads it.
func LoadFile(path string, opts Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()
	return Load(f, filepath.Base(path), opts)
}

// Normalize strips a UTF-8 byte order mark and converts CRLF and CR line
// endings to LF.
func Normalize(text string) string {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// builder accumulates output lines and the headings found among them.
type builder struct {
	lines   []string
	outline []Heading
}

func (b *builder) line(s string) {
	b.lines = append(b.lines, s)
}

func (b *builder) heading(level int, title string) {
	b.outline = append(b.outline, Heading{Level: level, Title: title, Line: len(b.lines) + 1})
	b.line(title)
}

// blank separates blocks, collapsing runs of blank lines.
func (b *builder) blank() {
	if n := len(b.lines); n > 0 && b.lines[n-1] != "" {
		b.line("")
	}
}

func (b *builder) document(name string) *Document {
	lines := b.lines
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return &Document{Name: name, Text: strings.Join(lines, "\n"), Outline: b.outline}
}
