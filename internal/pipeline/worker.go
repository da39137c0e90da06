package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/citeshield/internal/config"
	"github.com/dgallion1/citeshield/internal/stats"
)

// Worker processes a single document job.
type Worker struct {
	briefs *BriefStore
	stats  *stats.Recorder
	log    *slog.Logger
	cfg    config.Config
}

func NewWorker(briefs *BriefStore, rec *stats.Recorder, log *slog.Logger, cfg config.Config) *Worker {
	return &Worker{
		briefs: briefs,
		stats:  rec,
		log:    log,
		cfg:    cfg,
	}
}

// Process loads, chunks and registers the brief for a job. The terminal
// status is set last, after the upload has been released.
func (w *Worker) Process(ctx context.Context, job *Job) {
	done := w.stats.Time("build")
	status, phase := w.run(ctx, job)
	job.releaseFileData()
	done()
	job.SetStatus(status, phase)
}

func (w *Worker) run(ctx context.Context, job *Job) (JobStatus, string) {
	log := w.log.With("job_id", job.ID, "filename", job.Filename)

	if err := ctx.Err(); err != nil {
		job.AddError(err.Error())
		return StatusFailed, "cancelled"
	}

	// Phase 1: Load
	job.SetStatus(StatusLoading, "loading")
	doc, err := LoadDocument(job.Filename, job.FileData(), w.cfg)
	if err != nil {
		log.Error("load failed", "error", err)
		job.AddError(fmt.Sprintf("load: %s", err))
		return StatusFailed, "loading"
	}

	// Phase 2: Chunk and index
	job.SetStatus(StatusChunking, "chunking")
	brief, err := NewBrief(doc, w.cfg)
	if err != nil {
		log.Error("chunking failed", "error", err)
		job.AddError(fmt.Sprintf("chunk: %s", err))
		return StatusFailed, "chunking"
	}
	job.SetResult(brief.ID, brief.ContentHash, brief.Store.TotalLines(), brief.Store.Len())

	// Phase 3: Dedup and register
	if existing, added := w.briefs.PutIfAbsent(brief); !added {
		log.Info("duplicate document, skipping", "doc_id", brief.ID, "existing_name", existing.Name)
		return StatusDupSkipped, "dedup"
	}

	log.Info("brief ready", "doc_id", brief.ID, "lines", brief.Store.TotalLines(), "sections", brief.Store.Len())
	return StatusCompleted, "done"
}
