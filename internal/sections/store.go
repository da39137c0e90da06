// Package sections holds the per-document chunk store and the read-only
// operations an agent uses to navigate it: list, get and search.
package sections

import (
	"fmt"
	"strings"

	"github.com/dgallion1/citeshield/internal/chunker"
)

const (
	DefaultPageSize       = 5
	DefaultMaxResults     = 3
	DefaultOverviewLimit  = 6
	DefaultOverviewBudget = 400
)

// Store is an immutable, ordered collection of chunks for one document.
// All methods are safe for concurrent use.
type Store struct {
	name     string
	chunks   []chunker.Chunk
	index    []termIndex
	overview string

	scorer         Scorer
	pageSize       int
	maxResults     int
	overviewLimit  int
	overviewBudget int
}

// Option configures a Store.
type Option func(*Store)

// WithScorer overrides the relevance scorer.
func WithScorer(sc Scorer) Option {
	return func(s *Store) { s.scorer = sc }
}

// WithPageSize sets the page size used when List is called with zero.
func WithPageSize(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithMaxResults sets the result cap used when Search is called with zero.
func WithMaxResults(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxResults = n
		}
	}
}

// WithOverviewLimit caps the number of section rows in the overview.
func WithOverviewLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.overviewLimit = n
		}
	}
}

// WithOverviewBudget caps the estimated token size of the overview.
func WithOverviewBudget(tokens int) Option {
	return func(s *Store) {
		if tokens > 0 {
			s.overviewBudget = tokens
		}
	}
}

// New builds a store over a copy of chunks. Chunks must be in index order.
func New(name string, chunks []chunker.Chunk, opts ...Option) *Store {
	s := &Store{
		name:           name,
		chunks:         append([]chunker.Chunk(nil), chunks...),
		scorer:         DefaultScorer(),
		pageSize:       DefaultPageSize,
		maxResults:     DefaultMaxResults,
		overviewLimit:  DefaultOverviewLimit,
		overviewBudget: DefaultOverviewBudget,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.index = make([]termIndex, len(s.chunks))
	for i, c := range s.chunks {
		s.index[i] = indexChunk(c)
	}
	s.overview = buildOverview(s.chunks, s.overviewLimit, s.overviewBudget)
	return s
}

// Build chunks text with cfg and wraps the result in a store.
func Build(name, text string, cfg chunker.Config, opts ...Option) (*Store, error) {
	chunks, err := chunker.ChunkText(text, cfg)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", name, err)
	}
	return New(name, chunks, opts...), nil
}

// Name returns the document label.
func (s *Store) Name() string { return s.name }

// Len returns the number of sections.
func (s *Store) Len() int { return len(s.chunks) }

// Overview returns the summary computed at construction.
func (s *Store) Overview() string { return s.overview }

// TotalLines returns the last line number covered, or 0 for an empty document.
func (s *Store) TotalLines() int {
	if len(s.chunks) == 0 {
		return 0
	}
	return s.chunks[len(s.chunks)-1].EndLine
}

// Chunks returns a copy of the chunk sequence.
func (s *Store) Chunks() []chunker.Chunk {
	return append([]chunker.Chunk(nil), s.chunks...)
}

// Annotated returns the full annotated document.
func (s *Store) Annotated() string {
	var b strings.Builder
	next := 1
	for _, c := range s.chunks {
		for i, line := range c.Lines() {
			if c.StartLine+i < next {
				continue
			}
			if next > 1 {
				b.WriteByte('\n')
			}
			b.WriteString(line)
			next++
		}
	}
	return b.String()
}

func buildOverview(chunks []chunker.Chunk, limit, budget int) string {
	if len(chunks) == 0 {
		return "No sections: the document is empty."
	}

	var b strings.Builder
	last := chunks[len(chunks)-1].EndLine
	fmt.Fprintf(&b, "%d sections covering lines 1-%d.", len(chunks), last)
	tokens := chunker.EstimateTokens(b.String())

	shown := 0
	for _, c := range chunks {
		if shown >= limit {
			break
		}
		row := fmt.Sprintf("- Section %d (lines %d-%d): %s", c.Index, c.StartLine, c.EndLine, c.Preview())
		cost := chunker.EstimateTokens(row)
		if shown > 0 && tokens+cost > budget {
			break
		}
		b.WriteByte('\n')
		b.WriteString(row)
		tokens += cost
		shown++
	}
	if rest := len(chunks) - shown; rest > 0 {
		fmt.Fprintf(&b, "\n- ... %d more sections", rest)
	}
	return b.String()
}
