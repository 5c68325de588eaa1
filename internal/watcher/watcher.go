package watcher

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"go-image-analyzer/internal/analyzer"
	"go-image-analyzer/internal/logger"
	"go-image-analyzer/internal/orchestrator"
	"go-image-analyzer/internal/storage"
)

// Watcher polls a blob container and starts one analysis job per newly
// observed blob. It carries no business logic beyond job submission.
type Watcher struct {
	blobs     storage.BlobSource
	pool      *orchestrator.JobPool
	container string
	interval  time.Duration

	mu   sync.Mutex
	seen map[string]struct{}
}

func New(blobs storage.BlobSource, pool *orchestrator.JobPool, container string, interval time.Duration) *Watcher {
	return &Watcher{
		blobs:     blobs,
		pool:      pool,
		container: container,
		interval:  interval,
		seen:      make(map[string]struct{}),
	}
}

// Run polls until the context is canceled. The first poll marks existing
// blobs as seen without starting jobs, so a restart does not re-analyze the
// whole container.
func (w *Watcher) Run(ctx context.Context) {
	logger.WithFields(logrus.Fields{
		"container": w.container,
		"interval":  w.interval.String(),
	}).Info("Starting blob watcher")

	w.poll(ctx, false)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Blob watcher stopped")
			return
		case <-ticker.C:
			w.poll(ctx, true)
		}
	}
}

func (w *Watcher) poll(ctx context.Context, submit bool) {
	blobs, err := w.blobs.List(ctx, w.container)
	if err != nil {
		logger.WithError(err).WithField("container", w.container).Warn("Blob listing failed")
		return
	}

	for _, blob := range blobs {
		w.mu.Lock()
		_, known := w.seen[blob.Name]
		w.seen[blob.Name] = struct{}{}
		w.mu.Unlock()
		if known || !submit {
			continue
		}

		job := analyzer.NewJob(w.container+"/"+blob.Name, blob.SizeBytes)
		logger.WithFields(logrus.Fields{
			"blob":    job.BlobName,
			"size_kb": job.BlobSizeKB,
		}).Info("New image detected")
		if !w.pool.Submit(ctx, job) {
			return
		}
	}
}
