package sections

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dgallion1/citeshield/internal/chunker"
)

func buildLines(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "paragraph %d text\n", i)
	}
	return b.String()
}

func mustBuild(t *testing.T, text string, cfg chunker.Config, opts ...Option) *Store {
	t.Helper()
	s, err := Build("brief.txt", text, cfg, opts...)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func TestBuild_RejectsBadConfig(t *testing.T) {
	_, err := Build("brief.txt", "a\nb", chunker.Config{MaxLines: 10, Overlap: 10})
	if !chunker.IsConfigurationError(err) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestStore_Overview(t *testing.T) {
	s := mustBuild(t, buildLines(100), chunker.Config{MaxLines: 40, Overlap: 5})

	ov := s.Overview()
	if !strings.HasPrefix(ov, "3 sections covering lines 1-100.") {
		t.Errorf("unexpected header: %q", ov)
	}
	for _, want := range []string{
		"- Section 0 (lines 1-40): paragraph 1 text paragraph 2 text paragraph 3 text",
		"- Section 1 (lines 36-75): paragraph 36 text",
		"- Section 2 (lines 71-100):",
	} {
		if !strings.Contains(ov, want) {
			t.Errorf("overview missing %q:\n%s", want, ov)
		}
	}
	if strings.Contains(ov, "more sections") {
		t.Errorf("overview should not be truncated:\n%s", ov)
	}
}

func TestStore_OverviewTruncated(t *testing.T) {
	s := mustBuild(t, buildLines(100), chunker.Config{MaxLines: 10, Overlap: 0}, WithOverviewLimit(2))

	ov := s.Overview()
	if got := strings.Count(ov, "\n- Section "); got != 2 {
		t.Errorf("expected 2 rows, got %d:\n%s", got, ov)
	}
	if !strings.HasSuffix(ov, "- ... 8 more sections") {
		t.Errorf("expected truncation marker:\n%s", ov)
	}
}

func TestStore_OverviewBudget(t *testing.T) {
	s := mustBuild(t, buildLines(100), chunker.Config{MaxLines: 10, Overlap: 0}, WithOverviewBudget(20))

	ov := s.Overview()
	// The first row is always shown even when it alone exceeds the budget.
	if !strings.Contains(ov, "- Section 0 ") {
		t.Errorf("first row missing:\n%s", ov)
	}
	if strings.Contains(ov, "- Section 5 ") {
		t.Errorf("budget not applied:\n%s", ov)
	}
	if !strings.Contains(ov, "more sections") {
		t.Errorf("expected truncation marker:\n%s", ov)
	}
}

func TestStore_EmptyDocument(t *testing.T) {
	s := mustBuild(t, "", chunker.DefaultConfig())

	if s.Len() != 0 {
		t.Fatalf("expected 0 sections, got %d", s.Len())
	}
	if s.Overview() != "No sections: the document is empty." {
		t.Errorf("unexpected overview %q", s.Overview())
	}
	if s.TotalLines() != 0 {
		t.Errorf("expected 0 lines, got %d", s.TotalLines())
	}
	rows, err := s.List(0, 0)
	if err != nil || len(rows) != 0 {
		t.Errorf("List on empty store: rows=%v err=%v", rows, err)
	}
	if _, err := s.Get(0); !IsNotFound(err) {
		t.Errorf("expected NotFoundError, got %v", err)
	}
}

func TestStore_ChunksAreCopies(t *testing.T) {
	chunks, err := chunker.ChunkText(buildLines(10), chunker.Config{MaxLines: 4, Overlap: 1})
	if err != nil {
		t.Fatalf("ChunkText: %v", err)
	}
	s := New("brief.txt", chunks)

	chunks[0].Text = "mutated"
	out := s.Chunks()
	out[1].Text = "mutated"

	first, _ := s.Get(0)
	second, _ := s.Get(1)
	if first.Text == "mutated" || second.Text == "mutated" {
		t.Fatal("store was modified through a shared slice")
	}
}

func TestStore_Annotated(t *testing.T) {
	text := buildLines(23)
	s := mustBuild(t, text, chunker.Config{MaxLines: 7, Overlap: 2})
	if got, want := s.Annotated(), chunker.Annotate(text); got != want {
		t.Errorf("Annotated() mismatch:\n got %q\nwant %q", got, want)
	}
	if s.TotalLines() != 23 {
		t.Errorf("expected 23 lines, got %d", s.TotalLines())
	}
}
