package sections

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/citeshield/internal/chunker"
)

var termPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// Query words that carry no topical signal.
var stopwords = map[string]struct{}{
	"and": {}, "are": {}, "but": {}, "for": {}, "from": {}, "has": {},
	"had": {}, "have": {}, "its": {}, "not": {}, "that": {}, "the": {},
	"this": {}, "was": {}, "were": {}, "with": {},
}

// Weights combine the three relevance signals.
type Weights struct {
	Frequency float64 `json:"frequency" yaml:"frequency"`
	Coverage  float64 `json:"coverage" yaml:"coverage"`
	Density   float64 `json:"density" yaml:"density"`
}

// DefaultWeights favour chunks that match more distinct query terms.
func DefaultWeights() Weights {
	return Weights{Frequency: 1, Coverage: 10, Density: 5}
}

// Scorer ranks chunks against a free-text query.
//
// With CoverageFirst set, the integer part of a score is the number of
// distinct query terms the chunk contains and the weighted blend of the
// signals is squashed into [0, 1). A chunk matching more terms then always
// scores strictly higher, however often a rival repeats a single term.
// Without it the score is the plain weighted sum.
type Scorer struct {
	Weights       Weights
	MinTermLength int
	CoverageFirst bool
}

// DefaultScorer returns the scorer used when none is configured.
func DefaultScorer() Scorer {
	return Scorer{Weights: DefaultWeights(), MinTermLength: 3, CoverageFirst: true}
}

// Terms extracts the unique query terms in first-seen order.
func (s Scorer) Terms(query string) []string {
	seen := make(map[string]struct{})
	var terms []string
	for _, tok := range tokenize(query) {
		if utf8.RuneCountInString(tok) < s.MinTermLength {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		terms = append(terms, tok)
	}
	return terms
}

// Score computes the relevance of a single chunk for query.
func (s Scorer) Score(c chunker.Chunk, query string) float64 {
	return s.score(indexChunk(c), s.Terms(query))
}

func (s Scorer) score(idx termIndex, terms []string) float64 {
	if len(terms) == 0 || idx.total == 0 {
		return 0
	}
	freq, present := 0, 0
	for _, term := range terms {
		if n := idx.counts[term]; n > 0 {
			freq += n
			present++
		}
	}
	if freq == 0 {
		return 0
	}
	coverage := float64(present) / float64(len(terms))
	density := float64(freq) / float64(idx.total)
	blend := s.Weights.Frequency*float64(freq) +
		s.Weights.Coverage*coverage +
		s.Weights.Density*density
	if !s.CoverageFirst {
		return blend
	}
	return float64(present) + blend/(1+blend)
}

// termIndex holds the token counts of one chunk's line bodies.
type termIndex struct {
	counts map[string]int
	total  int
}

func indexChunk(c chunker.Chunk) termIndex {
	idx := termIndex{counts: make(map[string]int)}
	for _, line := range c.Lines() {
		for _, tok := range tokenize(chunker.StripLineNumber(line)) {
			idx.counts[tok]++
			idx.total++
		}
	}
	return idx
}

func tokenize(text string) []string {
	return termPattern.FindAllString(strings.ToLower(text), -1)
}

// lineMatches reports whether an annotated line mentions any term.
func lineMatches(line string, terms []string) bool {
	for _, tok := range tokenize(chunker.StripLineNumber(line)) {
		for _, term := range terms {
			if tok == term {
				return true
			}
		}
	}
	return false
}
