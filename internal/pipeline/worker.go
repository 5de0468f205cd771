package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/stxdoc/internal/parser"
	"github.com/dgallion1/stxdoc/internal/pathstore"
	"github.com/dgallion1/stxdoc/internal/stats"
	"github.com/dgallion1/stxdoc/internal/stx"
)

// Worker processes a single document job.
type Worker struct {
	importer  *parser.Importer
	pathstore *pathstore.Client // nil when publishing is disabled
	stats     *stats.Render
	log       *slog.Logger

	retry publishRetry
}

func NewWorker(importer *parser.Importer, ps *pathstore.Client, st *stats.Render, log *slog.Logger) *Worker {
	return &Worker{
		importer:  importer,
		pathstore: ps,
		stats:     st,
		log:       log,
		retry:     defaultPublishRetry,
	}
}

// Process runs import, render and publish for a job.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)

	// Phase 1: Import to structured text.
	job.SetStatus(StatusImporting, "importing")
	text, err := w.importer.ImportBytes(job.FileData(), job.Filename)
	if err != nil {
		log.Error("import failed", "error", err)
		job.AddError(fmt.Sprintf("import: %s", err))
		job.SetStatus(StatusFailed, "importing")
		return
	}
	job.SetImported(len(text), ContentHashHex([]byte(text)))

	// Phase 1.5: Dedup check against published documents.
	publish := job.Publish && w.pathstore != nil
	if job.Publish && w.pathstore == nil {
		log.Warn("publishing disabled, rendering only")
	}
	if publish {
		existing, err := w.pathstore.FindByHash(ctx, job.ContentHash)
		if err != nil {
			log.Warn("dedup check failed, proceeding", "error", err)
		} else if existing != "" {
			log.Info("duplicate document, skipping", "existing_doc_id", existing)
			job.SetDuplicate(existing)
			job.SetStatus(StatusDupSkipped, "dedup")
			return
		}
	}

	// Phase 2: Render.
	job.SetStatus(StatusRendering, "rendering")
	var html string
	w.stats.Time(len(text), func() {
		html = stx.HTML(text, job.Level)
	})
	job.SetResult(html)
	log.Info("rendered document", "text_bytes", len(text), "html_bytes", len(html))

	if !publish {
		job.SetStatus(StatusCompleted, "done")
		return
	}

	// Phase 3: Publish to pathstore.
	job.SetStatus(StatusPublishing, "publishing")
	meta := pathstore.DocumentMeta{
		DocID:       job.DocID,
		Title:       job.Title,
		Filename:    job.Filename,
		ContentHash: job.ContentHash,
		Level:       job.Level,
		HTMLBytes:   len(html),
		PublishedAt: time.Now().UTC(),
	}
	if err := w.publish(ctx, log, job, meta, html); err != nil {
		log.Error("publish failed", "error", err)
		job.AddError(fmt.Sprintf("publish: %s", err))
		job.SetStatus(StatusFailed, "publishing")
		return
	}
	log.Info("published document")
	job.SetStatus(StatusCompleted, "done")
}

func (w *Worker) publish(ctx context.Context, log *slog.Logger, job *Job, meta pathstore.DocumentMeta, html string) error {
	var lastErr error
	for attempt := range w.retry.attempts {
		job.IncrPublishAttempts()
		lastErr = w.pathstore.PublishDocument(ctx, meta, html)
		if lastErr == nil || !IsRetryable(lastErr) {
			return lastErr
		}
		if attempt == w.retry.attempts-1 {
			break
		}
		wait := w.retry.delay(attempt, lastErr)
		log.Warn("retryable publish error", "attempt", attempt, "wait", wait, "error", lastErr)
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return lastErr
}
