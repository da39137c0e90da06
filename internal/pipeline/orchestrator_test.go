package pipeline

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgallion1/citeshield/internal/stats"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func waitForStatus(t *testing.T, o *Orchestrator, id string, want ...JobStatus) JobSnapshot {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		snap := o.GetJob(id).Snapshot()
		for _, w := range want {
			if snap.Status == w {
				return snap
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s never reached %v", id, want)
	return JobSnapshot{}
}

func TestOrchestrator_ProcessesJobs(t *testing.T) {
	briefs := NewBriefStore(time.Hour)
	rec := stats.NewRecorder(time.Hour)
	o := NewOrchestrator(testConfig(), briefs, rec, discardLogger())
	o.Start(context.Background())
	defer o.Stop()

	ok := NewJob("brief.txt", hundredLines())
	bad := NewJob("scan.png", []byte("x"))
	if err := o.Submit(ok); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if err := o.Submit(bad); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	snap := waitForStatus(t, o, ok.ID, StatusCompleted)
	if snap.DocID == "" || snap.Progress.TotalLines != 100 {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if briefs.Get(snap.DocID) == nil {
		t.Error("expected brief to be registered")
	}
	if ok.FileData() != nil {
		t.Error("file data should be released after processing")
	}

	failed := waitForStatus(t, o, bad.ID, StatusFailed)
	if len(failed.Progress.Errors) == 0 {
		t.Error("expected failure to be recorded")
	}

	if rec.Snapshot()["build"].Count < 1 {
		t.Error("expected build latency to be recorded")
	}
}

func TestOrchestrator_DuplicateSkipped(t *testing.T) {
	briefs := NewBriefStore(time.Hour)
	o := NewOrchestrator(testConfig(), briefs, nil, discardLogger())
	o.Start(context.Background())
	defer o.Stop()

	first := NewJob("a.txt", hundredLines())
	if err := o.Submit(first); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	waitForStatus(t, o, first.ID, StatusCompleted)

	second := NewJob("b.txt", hundredLines())
	if err := o.Submit(second); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	snap := waitForStatus(t, o, second.ID, StatusDupSkipped)
	if snap.DocID != first.Snapshot().DocID {
		t.Errorf("duplicate should resolve to the existing doc id")
	}
	if briefs.Len() != 1 {
		t.Errorf("expected one brief, got %d", briefs.Len())
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := testConfig()
	cfg.MaxQueueSize = 1
	// Workers are not started, so the queue never drains.
	o := NewOrchestrator(cfg, NewBriefStore(time.Hour), nil, discardLogger())

	if err := o.Submit(NewJob("a.txt", []byte("a"))); err != nil {
		t.Fatalf("first Submit: %v", err)
	}
	job := NewJob("b.txt", []byte("b"))
	if err := o.Submit(job); err == nil {
		t.Fatal("expected queue full error")
	}
	if job.Snapshot().Status != StatusFailed {
		t.Errorf("expected failed status, got %q", job.Snapshot().Status)
	}
	if o.QueueDepth() != 1 {
		t.Errorf("expected queue depth 1, got %d", o.QueueDepth())
	}
}
