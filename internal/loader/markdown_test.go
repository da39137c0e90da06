package loader

import (
	"reflect"
	"strings"
	"testing"
)

func TestMarkdownLoader_OutlineLineNumbers(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content with ` + "`code`" + `.

### Subsection *A1*

Subsection A1 content.

## Section B

Section B content.
`
	l := &MarkdownLoader{}
	doc, err := l.Load(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Text != input {
		t.Errorf("markdown source should be kept verbatim")
	}

	want := []Heading{
		{Level: 1, Title: "Title", Line: 1},
		{Level: 2, Title: "Section A", Line: 5},
		{Level: 3, Title: "Subsection A1", Line: 9},
		{Level: 2, Title: "Section B", Line: 13},
	}
	if !reflect.DeepEqual(doc.Outline, want) {
		t.Errorf("outline = %+v\nwant %+v", doc.Outline, want)
	}
}

func TestMarkdownLoader_NoHeadings(t *testing.T) {
	l := &MarkdownLoader{}
	doc, err := l.Load(strings.NewReader("Just a paragraph.\r\nAnd another line."), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Outline) != 0 {
		t.Errorf("expected empty outline, got %v", doc.Outline)
	}
	if doc.Text != "Just a paragraph.\nAnd another line." {
		t.Errorf("got %q", doc.Text)
	}
}

func TestMarkdownLoader_SetextHeading(t *testing.T) {
	input := "Preamble\n\nHeading Here\n============\n\nBody.\n"
	l := &MarkdownLoader{}
	doc, err := l.Load(strings.NewReader(input), "setext.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Heading{{Level: 1, Title: "Heading Here", Line: 3}}
	if !reflect.DeepEqual(doc.Outline, want) {
		t.Errorf("outline = %+v, want %+v", doc.Outline, want)
	}
}
