package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/stxdoc/internal/config"
	"github.com/dgallion1/stxdoc/internal/parser"
	"github.com/dgallion1/stxdoc/internal/pathstore"
	"github.com/dgallion1/stxdoc/internal/pathstore/pathstoretest"
	"github.com/dgallion1/stxdoc/internal/stats"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWorker(ps *pathstore.Client) *Worker {
	w := NewWorker(&parser.Importer{}, ps, stats.NewRender(time.Hour), discardLogger())
	w.retry.base = 0
	return w
}

func newJob(filename, text string, publish bool) *Job {
	job := NewJob(filename, "", []byte(text))
	job.Level = 1
	job.Publish = publish
	return job
}

func TestWorker_RenderOnly(t *testing.T) {
	w := newTestWorker(nil)
	job := newJob("notes.stx", "Title\n\n  Some *text*.\n", false)

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	require.Equal(t, StatusCompleted, snap.Status, snap.Progress.Errors)
	html, ok := job.Result()
	require.True(t, ok)
	assert.Equal(t, "<h1>Title</h1>\n<p>Some <em>text</em>.</p>\n\n\n", html)
	assert.Equal(t, ContentHashHex([]byte("Title\n\n  Some *text*.\n")), snap.ContentHash)
	assert.Equal(t, 1, w.stats.Snapshot().Count)
}

func TestWorker_ImportsMarkdown(t *testing.T) {
	w := newTestWorker(nil)
	job := newJob("guide.md", "# Guide\n\n- one\n- two\n", false)

	w.Process(context.Background(), job)

	html, ok := job.Result()
	require.True(t, ok)
	assert.Equal(t, "<h1>Guide</h1>\n<ul><li><p>one</p>\n\n\n<li><p>two</p>\n\n</ul>\n\n", html)
}

func TestWorker_ImportFailure(t *testing.T) {
	w := newTestWorker(nil)
	job := newJob("image.png", "x", false)

	w.Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "importing", snap.Phase)
	require.Len(t, snap.Progress.Errors, 1)
	assert.Contains(t, snap.Progress.Errors[0], "unsupported file extension")
}

func TestWorker_PublishAndDedup(t *testing.T) {
	srv := pathstoretest.NewServer()
	defer srv.Close()
	w := newTestWorker(pathstore.NewClient(srv.URL, "key"))

	first := newJob("a.stx", "Hello.\n", true)
	first.DocID = "hello"
	first.Title = "Hello"
	w.Process(context.Background(), first)
	require.Equal(t, StatusCompleted, first.Snapshot().Status, first.Snapshot().Progress.Errors)

	raw, ok := srv.Value("documents/hello/html")
	require.True(t, ok)
	var html string
	require.NoError(t, json.Unmarshal(raw, &html))
	assert.Equal(t, "<p>Hello.</p>\n\n", html)

	raw, ok = srv.Value("documents/hello/meta")
	require.True(t, ok)
	var meta pathstore.DocumentMeta
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "Hello", meta.Title)
	assert.Equal(t, first.ContentHash, meta.ContentHash)

	second := newJob("b.txt", "Hello.\n", true)
	w.Process(context.Background(), second)
	snap := second.Snapshot()
	assert.Equal(t, StatusDupSkipped, snap.Status)
	assert.Equal(t, "hello", snap.DuplicateOf)
}

func TestWorker_PublishRetriesThenFails(t *testing.T) {
	srv := pathstoretest.NewServer()
	defer srv.Close()
	w := newTestWorker(pathstore.NewClient(srv.URL, "key"))
	srv.FailWith(http.StatusBadGateway)

	job := newJob("a.stx", "Hello.\n", true)
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "publishing", snap.Phase)
	assert.Equal(t, defaultPublishRetry.attempts, snap.Progress.PublishAttempts)
}

func TestWorker_PublishPermanentError(t *testing.T) {
	srv := pathstoretest.NewServer()
	defer srv.Close()
	w := newTestWorker(pathstore.NewClient(srv.URL, "key"))
	srv.FailWith(http.StatusForbidden)

	job := newJob("a.stx", "Hello.\n", true)
	w.Process(context.Background(), job)

	snap := job.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, 1, snap.Progress.PublishAttempts)
}

func TestOrchestrator_ProcessesJobs(t *testing.T) {
	cfg := config.Config{WorkerCount: 2, MaxQueueSize: 10, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, nil, stats.NewRender(time.Hour), discardLogger())
	o.Start(context.Background())
	defer o.Stop()

	job := newJob("a.stx", "- item\n", false)
	require.NoError(t, o.Submit(job))
	require.Same(t, job, o.GetJob(job.ID))

	require.Eventually(t, func() bool {
		_, ok := job.Result()
		return ok
	}, 5*time.Second, 10*time.Millisecond)
	html, _ := job.Result()
	assert.Equal(t, "<ul><li><p>item</p>\n\n</ul>\n", html)
}

func TestOrchestrator_QueueFull(t *testing.T) {
	cfg := config.Config{WorkerCount: 1, MaxQueueSize: 1, JobTTL: time.Hour}
	o := NewOrchestrator(cfg, nil, stats.NewRender(time.Hour), discardLogger())

	require.NoError(t, o.Submit(newJob("a.stx", "a", false)))
	overflow := newJob("b.stx", "b", false)
	assert.Error(t, o.Submit(overflow))
	snap := overflow.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, "queue_full", snap.Phase)
	assert.Equal(t, 1, o.QueueDepth())
}
