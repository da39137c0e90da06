package sections

import (
	"fmt"
	"strings"

	"github.com/dgallion1/citeshield/internal/chunker"
)

// FormatSummaries renders a listing as plain text for agents.
func FormatSummaries(rows []Summary) string {
	if len(rows) == 0 {
		return "No sections available."
	}
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = fmt.Sprintf("Section %d (lines %d-%d): %s", r.Index, r.StartLine, r.EndLine, r.Preview)
	}
	return strings.Join(lines, "\n")
}

// FormatSection renders a full section with its header.
func FormatSection(c chunker.Chunk) string {
	return fmt.Sprintf("Section %d (lines %d-%d):\n%s", c.Index, c.StartLine, c.EndLine, c.Text)
}

// FormatResults renders search hits, best first.
func FormatResults(results []Result) string {
	if len(results) == 0 {
		return "No relevant sections found. Try a different query."
	}
	blocks := make([]string, len(results))
	for i, r := range results {
		blocks[i] = fmt.Sprintf("Section %d (lines %d-%d, score %.2f):\n%s", r.Index, r.StartLine, r.EndLine, r.Score, r.Excerpt)
	}
	return strings.Join(blocks, "\n\n")
}
