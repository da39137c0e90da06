package loader

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestForFile(t *testing.T) {
	tests := []struct {
		filename string
		want     Loader
	}{
		{"brief.txt", &TextLoader{}},
		{"README", &TextLoader{}},
		{"notes.MD", &MarkdownLoader{}},
		{"table.csv", &CSVLoader{}},
		{"page.htm", &HTMLLoader{}},
		{"brief.pdf", &PDFLoader{FallbackPdftotext: true}},
		{"brief.docx", &DOCXLoader{}},
	}
	for _, tt := range tests {
		got, err := ForFile(tt.filename, Options{PDFFallbackPdftotext: true})
		if err != nil {
			t.Errorf("ForFile(%q): %v", tt.filename, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ForFile(%q) = %T, want %T", tt.filename, got, tt.want)
		}
		if !IsSupportedExtension(tt.filename) {
			t.Errorf("IsSupportedExtension(%q) = false", tt.filename)
		}
	}

	if _, err := ForFile("image.png", Options{}); err == nil {
		t.Error("expected error for unsupported extension")
	}
	if IsSupportedExtension("image.png") {
		t.Error("png should not be supported")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "brief.txt")
	if err := os.WriteFile(path, []byte("line one\nline two\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := LoadFile(path, Options{})
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if doc.Name != "brief.txt" {
		t.Errorf("expected name brief.txt, got %q", doc.Name)
	}
	if doc.Text != "line one\nline two\n" {
		t.Errorf("got %q", doc.Text)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.txt"), Options{}); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_CorruptBinaryFormats(t *testing.T) {
	for _, name := range []string{"bad.pdf", "bad.docx"} {
		_, err := Load(strings.NewReader("not really a document"), name, Options{})
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if !strings.Contains(err.Error(), name) {
			t.Errorf("%s: error should name the file, got %v", name, err)
		}
	}
}

func TestExtensions(t *testing.T) {
	exts := Extensions()
	if len(exts) != len(SupportedExtensions)-1 {
		t.Fatalf("expected %d extensions, got %v", len(SupportedExtensions)-1, exts)
	}
	if exts[0] != ".csv" {
		t.Errorf("expected sorted output, got %v", exts)
	}
}

func TestDocument_Lines(t *testing.T) {
	doc := &Document{Text: "one\n\nthree\n"}
	got := doc.Lines()
	if len(got) != 3 || got[0] != "one" || got[1] != "" || got[2] != "three" {
		t.Errorf("Lines() = %q", got)
	}
	if n := len((&Document{}).Lines()); n != 0 {
		t.Errorf("empty document has %d lines, want 0", n)
	}
}
