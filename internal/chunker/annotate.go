package chunker

import (
	"fmt"
	"strings"
)

// LineNumberWidth is the minimum digit width of an annotation prefix.
const LineNumberWidth = 4

// SplitLines normalizes line endings and splits text into lines.
// Blank lines are kept. A trailing line terminator ends the last line
// rather than starting an empty one, so "" has zero lines and "\n" has one.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}

// FormatLine renders one annotated line, e.g. "0042: text".
func FormatLine(n int, body string) string {
	return strings.TrimRight(fmt.Sprintf("%0*d: %s", LineNumberWidth, n, body), " \t")
}

// StripLineNumber removes the "NNNN:" prefix from an annotated line.
// Lines without a numeric prefix are returned unchanged.
func StripLineNumber(line string) string {
	prefix, body, ok := strings.Cut(line, ":")
	if !ok || prefix == "" {
		return line
	}
	for _, r := range prefix {
		if r < '0' || r > '9' {
			return line
		}
	}
	return strings.TrimPrefix(body, " ")
}

// Annotate prefixes every line of text with its 1-based line number.
// Lines come from SplitLines, so unlike strings.Split on "\n" a trailing
// newline does not add a final empty line: "a\n" annotates as one line.
func Annotate(text string) string {
	return annotateLines(SplitLines(text), 1)
}

// annotateLines renders lines with numbering starting at first.
func annotateLines(lines []string, first int) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(FormatLine(first+i, line))
	}
	return b.String()
}
