package chunker

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	previewLines = 3
	previewRunes = 160
)

// Config controls chunking behavior.
type Config struct {
	MaxLines int // Lines per chunk, at most.
	Overlap  int // Lines shared by consecutive chunks.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxLines: 40,
		Overlap:  5,
	}
}

// Validate rejects configurations that would not advance through the document.
func (c Config) Validate() error {
	if c.MaxLines < 1 {
		return &ConfigurationError{Field: "max_lines", Reason: fmt.Sprintf("must be at least 1, got %d", c.MaxLines)}
	}
	if c.Overlap < 0 {
		return &ConfigurationError{Field: "overlap", Reason: fmt.Sprintf("must not be negative, got %d", c.Overlap)}
	}
	if c.Overlap >= c.MaxLines {
		return &ConfigurationError{
			Field:  "overlap",
			Reason: fmt.Sprintf("must be smaller than max_lines (%d >= %d)", c.Overlap, c.MaxLines),
		}
	}
	return nil
}

// Chunk is one contiguous, line-numbered window of a document.
type Chunk struct {
	Index     int    `json:"index"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Text      string `json:"text"`
}

// LineCount returns the number of lines the chunk spans.
func (c Chunk) LineCount() int {
	return c.EndLine - c.StartLine + 1
}

// Lines returns the annotated lines of the chunk.
func (c Chunk) Lines() []string {
	return strings.Split(c.Text, "\n")
}

// Preview returns a short single-line excerpt for listings.
func (c Chunk) Preview() string {
	lines := c.Lines()
	if len(lines) > previewLines {
		lines = lines[:previewLines]
	}
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		if body := strings.TrimSpace(StripLineNumber(line)); body != "" {
			parts = append(parts, body)
		}
	}
	preview := strings.Join(parts, " ")
	if utf8.RuneCountInString(preview) > previewRunes {
		preview = string([]rune(preview)[:previewRunes]) + "..."
	}
	return preview
}

// ChunkLines splits lines into overlapping windows of at most cfg.MaxLines lines.
// An empty document yields no chunks.
func ChunkLines(lines []string, cfg Config) ([]Chunk, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := len(lines)
	if n == 0 {
		return nil, nil
	}

	chunks := make([]Chunk, 0, chunkCount(n, cfg))
	start := 0
	for {
		end := min(n, start+cfg.MaxLines)
		chunks = append(chunks, Chunk{
			Index:     len(chunks),
			StartLine: start + 1,
			EndLine:   end,
			Text:      annotateLines(lines[start:end], start+1),
		})
		if end == n {
			break
		}
		start = end - cfg.Overlap
	}
	return chunks, nil
}

// ChunkText splits raw text into lines and chunks them.
func ChunkText(text string, cfg Config) ([]Chunk, error) {
	return ChunkLines(SplitLines(text), cfg)
}

// chunkCount is the exact number of windows ChunkLines emits for n > 0 lines.
func chunkCount(n int, cfg Config) int {
	if n <= cfg.MaxLines {
		return 1
	}
	step := cfg.MaxLines - cfg.Overlap
	return 1 + (n-cfg.MaxLines+step-1)/step
}
