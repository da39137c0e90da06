package sections

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/citeshield/internal/chunker"
)

func TestScorer_Terms(t *testing.T) {
	sc := DefaultScorer()
	tests := []struct {
		query string
		want  []string
	}{
		{"Brown v. Board", []string{"brown", "board"}},
		{"brown BROWN Brown", []string{"brown"}},
		{"the holding of Miranda", []string{"holding", "miranda"}},
		{"42 U.S.C. § 1983", []string{"1983"}},
		{"Café Société", []string{"café", "société"}},
		{"", nil},
	}
	for _, tt := range tests {
		if got := sc.Terms(tt.query); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Terms(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestScorer_Score(t *testing.T) {
	c := chunker.Chunk{Index: 0, StartLine: 1, EndLine: 2, Text: "0001: brown brown filler\n0002: other words"}
	sc := DefaultScorer()
	sc.CoverageFirst = false

	// freq 2, coverage 1/2, density 2/5
	want := 1*2.0 + 10*0.5 + 5*0.4
	if got := sc.Score(c, "brown board"); math.Abs(got-want) > 1e-9 {
		t.Errorf("Score() = %v, want %v", got, want)
	}
	if got := sc.Score(c, "miranda"); got != 0 {
		t.Errorf("non-matching query scored %v", got)
	}
}

func TestScorer_CoverageFirst(t *testing.T) {
	c := chunker.Chunk{Index: 0, StartLine: 1, EndLine: 2, Text: "0001: brown brown filler\n0002: other words"}
	sc := DefaultScorer()

	// one distinct term; blend 2 + 5 + 2 = 9 squashed to 9/10
	want := 1 + 0.9
	if got := sc.Score(c, "brown board"); math.Abs(got-want) > 1e-9 {
		t.Errorf("Score() = %v, want %v", got, want)
	}

	repeated := chunker.Chunk{Text: "0001: " + strings.Repeat("brown ", 200)}
	both := chunker.Chunk{Text: "0001: brown met the board once in a long sentence about procedure"}
	if a, b := sc.Score(both, "brown board"), sc.Score(repeated, "brown board"); a <= b {
		t.Errorf("full coverage scored %v, single repeated term scored %v", a, b)
	}
}

func TestScorer_CustomWeights(t *testing.T) {
	c := chunker.Chunk{Text: "0001: brown brown brown board"}
	sc := Scorer{Weights: Weights{Frequency: 1}, MinTermLength: 3}
	if got := sc.Score(c, "brown board"); got != 4 {
		t.Errorf("frequency-only score = %v, want 4", got)
	}
	sc = Scorer{Weights: Weights{Coverage: 1}, MinTermLength: 3}
	if got := sc.Score(c, "brown board miranda"); math.Abs(got-2.0/3.0) > 1e-9 {
		t.Errorf("coverage-only score = %v, want 2/3", got)
	}
}

func TestStore_WithScorer(t *testing.T) {
	// Frequency-only ranking prefers repetition over coverage.
	text := "brown brown brown\nbrown board"
	s := mustBuild(t, text, chunker.Config{MaxLines: 1, Overlap: 0},
		WithScorer(Scorer{Weights: Weights{Frequency: 1}, MinTermLength: 3}))

	results, err := s.Search("brown board", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 || results[0].Index != 0 {
		t.Errorf("expected section 0 first, got %+v", results)
	}
}
