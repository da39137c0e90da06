package loader

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLoader keeps the Markdown source as-is and uses goldmark to find
// headings, so outline line numbers point into the raw text.
type MarkdownLoader struct{}

func (l *MarkdownLoader) Load(r io.Reader, filename string) (*Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	src := []byte(Normalize(string(raw)))

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var outline []Heading
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}
		title := strings.TrimSpace(inlineText(h, src))
		if title != "" {
			outline = append(outline, Heading{
				Level: h.Level,
				Title: title,
				Line:  lineAt(src, lines.At(0).Start),
			})
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}

	return &Document{Name: filename, Text: string(src), Outline: outline}, nil
}

// inlineText concatenates the text segments beneath n.
func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

// lineAt converts a byte offset into a 1-based line number.
func lineAt(src []byte, offset int) int {
	return bytes.Count(src[:offset], []byte("\n")) + 1
}
