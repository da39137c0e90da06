package sections

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dgallion1/citeshield/internal/chunker"
)

const maxExcerptLines = 3

// Summary is one row of a section listing.
type Summary struct {
	Index     int    `json:"index"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Preview   string `json:"preview"`
}

// Result is one ranked search hit.
type Result struct {
	Index     int     `json:"index"`
	StartLine int     `json:"start_line"`
	EndLine   int     `json:"end_line"`
	Score     float64 `json:"score"`
	Excerpt   string  `json:"excerpt"`
}

// List returns the sections on a 0-based page. A pageSize of zero uses the
// store default. Pages past the end are empty.
func (s *Store) List(page, pageSize int) ([]Summary, error) {
	if page < 0 {
		return nil, &ValidationError{Field: "page", Reason: fmt.Sprintf("must not be negative, got %d", page)}
	}
	if pageSize < 0 {
		return nil, &ValidationError{Field: "page_size", Reason: fmt.Sprintf("must not be negative, got %d", pageSize)}
	}
	if pageSize == 0 {
		pageSize = s.pageSize
	}

	out := []Summary{}
	if page > (len(s.chunks)-1)/pageSize {
		return out, nil
	}
	start := page * pageSize
	end := min(len(s.chunks), start+pageSize)
	for _, c := range s.chunks[start:end] {
		out = append(out, Summary{
			Index:     c.Index,
			StartLine: c.StartLine,
			EndLine:   c.EndLine,
			Preview:   c.Preview(),
		})
	}
	return out, nil
}

// Get returns the full section at index.
func (s *Store) Get(index int) (chunker.Chunk, error) {
	if index < 0 || index >= len(s.chunks) {
		return chunker.Chunk{}, &NotFoundError{Index: index, Count: len(s.chunks)}
	}
	return s.chunks[index], nil
}

// Search ranks sections against query and returns at most maxResults hits.
// A maxResults of zero uses the store default. Sections with no matching
// term are never returned.
func (s *Store) Search(query string, maxResults int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, &ValidationError{Field: "query", Reason: "must not be empty"}
	}
	if maxResults < 0 {
		return nil, &ValidationError{Field: "max_results", Reason: fmt.Sprintf("must not be negative, got %d", maxResults)}
	}
	if maxResults == 0 {
		maxResults = s.maxResults
	}

	results := []Result{}
	terms := s.scorer.Terms(query)
	if len(terms) == 0 {
		return results, nil
	}

	for i, c := range s.chunks {
		score := s.scorer.score(s.index[i], terms)
		if score <= 0 {
			continue
		}
		results = append(results, Result{
			Index:     c.Index,
			StartLine: c.StartLine,
			EndLine:   c.EndLine,
			Score:     score,
			Excerpt:   excerpt(c, terms),
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Score != results[b].Score {
			return results[a].Score > results[b].Score
		}
		return results[a].Index < results[b].Index
	})
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}

func excerpt(c chunker.Chunk, terms []string) string {
	var hits []string
	for _, line := range c.Lines() {
		if lineMatches(line, terms) {
			hits = append(hits, line)
			if len(hits) == maxExcerptLines {
				break
			}
		}
	}
	if len(hits) == 0 {
		return c.Preview()
	}
	return strings.Join(hits, "\n")
}
