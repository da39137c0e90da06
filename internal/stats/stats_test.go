package stats

import (
	"testing"
	"time"
)

func TestRecorderSnapshotPercentiles(t *testing.T) {
	rec := NewRecorder(time.Hour)
	for _, us := range []int64{100, 200, 300, 400, 500} {
		rec.Record("search", time.Duration(us)*time.Microsecond)
	}

	snap, ok := rec.Snapshot()["search"]
	if !ok {
		t.Fatal("expected search stats")
	}
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinUs != 100 || snap.MaxUs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinUs, snap.MaxUs)
	}
	if snap.AvgUs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgUs)
	}
	if snap.P50Us != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Us)
	}
	if snap.P95Us != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Us)
	}
	if snap.P99Us != 496 {
		t.Fatalf("expected p99=496, got %f", snap.P99Us)
	}
}

func TestRecorderSeparatesOperations(t *testing.T) {
	rec := NewRecorder(time.Hour)
	rec.Record("list", time.Millisecond)
	rec.Record("get", 2*time.Millisecond)
	rec.Record("get", 4*time.Millisecond)

	snaps := rec.Snapshot()
	if len(snaps) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(snaps))
	}
	if snaps["get"].Count != 2 || snaps["list"].Count != 1 {
		t.Errorf("unexpected counts: %+v", snaps)
	}
}

func TestRecorderPrunesExpiredSamples(t *testing.T) {
	rec := NewRecorder(10 * time.Millisecond)
	rec.Record("get", 100*time.Microsecond)
	time.Sleep(25 * time.Millisecond)

	if _, ok := rec.Snapshot()["get"]; ok {
		t.Fatal("expected no stats after prune")
	}

	rec.Record("get", 200*time.Microsecond)
	snap := rec.Snapshot()["get"]
	if snap.Count != 1 {
		t.Fatalf("expected count=1 for fresh sample, got %d", snap.Count)
	}
	if snap.MinUs != 200 || snap.MaxUs != 200 {
		t.Fatalf("expected min=max=200, got min=%d max=%d", snap.MinUs, snap.MaxUs)
	}
}

func TestRecorderClampsNegativeDuration(t *testing.T) {
	rec := NewRecorder(time.Hour)
	rec.Record("get", -10*time.Microsecond)
	snap := rec.Snapshot()["get"]
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinUs != 0 || snap.MaxUs != 0 {
		t.Fatalf("expected clamped duration=0, got min=%d max=%d", snap.MinUs, snap.MaxUs)
	}
}

func TestRecorderTimeAndNil(t *testing.T) {
	rec := NewRecorder(time.Hour)
	done := rec.Time("annotate")
	done()
	if rec.Snapshot()["annotate"].Count != 1 {
		t.Error("expected one annotate sample")
	}

	var nilRec *Recorder
	nilRec.Time("get")()
	if len(nilRec.Snapshot()) != 0 {
		t.Error("nil recorder should report nothing")
	}
}
