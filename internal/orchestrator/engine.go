package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"go-image-analyzer/internal/analyzer"
	"go-image-analyzer/internal/logger"
	"go-image-analyzer/internal/report"
	"go-image-analyzer/internal/repository"
)

// ColorAnalyzer produces the color facet of a job. Implementations are
// self-guarding: failures surface in the result's Error field, never as a
// returned error or panic.
type ColorAnalyzer interface {
	Analyze(ctx context.Context, job analyzer.Job) analyzer.ColorResult
}

type ObjectAnalyzer interface {
	Analyze(ctx context.Context, job analyzer.Job) analyzer.ObjectResult
}

type TextAnalyzer interface {
	Analyze(ctx context.Context, job analyzer.Job) analyzer.TextResult
}

type MetadataAnalyzer interface {
	Analyze(ctx context.Context, job analyzer.Job) analyzer.MetadataResult
}

// Engine runs one job to completion: fan out the four analyzers, join at the
// barrier, build the report, persist it.
type Engine struct {
	colors          ColorAnalyzer
	objects         ObjectAnalyzer
	text            TextAnalyzer
	metadata        MetadataAnalyzer
	reports         repository.ReportRepository
	analyzerTimeout time.Duration
}

func NewEngine(
	colors ColorAnalyzer,
	objects ObjectAnalyzer,
	text TextAnalyzer,
	metadata MetadataAnalyzer,
	reports repository.ReportRepository,
	analyzerTimeout time.Duration,
) *Engine {
	return &Engine{
		colors:          colors,
		objects:         objects,
		text:            text,
		metadata:        metadata,
		reports:         reports,
		analyzerTimeout: analyzerTimeout,
	}
}

// Run executes one job. Analyzer-local failures are carried inside the
// results and degrade the report; only faults escaping an analyzer's own
// guard (panics, infrastructure loss) or failures of the build/persist chain
// fail the job, in which case nothing is persisted.
func (e *Engine) Run(ctx context.Context, job analyzer.Job) (*repository.Ack, error) {
	log := logger.WithFields(logrus.Fields{
		"blob":    job.BlobName,
		"size_kb": job.BlobSizeKB,
	})
	log.Info("Starting image analysis job")

	var (
		colors   analyzer.ColorResult
		objects  analyzer.ObjectResult
		text     analyzer.TextResult
		metadata analyzer.MetadataResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return e.guarded(gctx, "colors", func(actx context.Context) {
			colors = e.colors.Analyze(actx, job)
		})
	})
	g.Go(func() error {
		return e.guarded(gctx, "objects", func(actx context.Context) {
			objects = e.objects.Analyze(actx, job)
		})
	})
	g.Go(func() error {
		return e.guarded(gctx, "text", func(actx context.Context) {
			text = e.text.Analyze(actx, job)
		})
	})
	g.Go(func() error {
		return e.guarded(gctx, "metadata", func(actx context.Context) {
			metadata = e.metadata.Analyze(actx, job)
		})
	})

	// Barrier: all four analyzers must finish before the chain proceeds.
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Image analysis job failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		log.WithError(err).Warn("Image analysis job canceled")
		return nil, err
	}

	rep := report.Build(job.BlobName, colors, objects, text, metadata)

	ack, err := e.reports.SaveReport(ctx, rep)
	if err != nil {
		log.WithError(err).Error("Failed to store analysis report")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"report_id":      ack.ID,
		"dominant_color": rep.Summary.DominantColor,
		"image_size":     rep.Summary.ImageSize,
	}).Info("Image analysis job completed")
	return ack, nil
}

// guarded invokes one analyzer with a bounded context and converts an
// escaped panic into a job-fatal error. Timeouts are not fatal here: the
// analyzer observes its context expiring and folds that into its own result.
func (e *Engine) guarded(ctx context.Context, name string, fn func(context.Context)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("analyzer %s panicked: %v", name, r)
		}
	}()

	actx := ctx
	if e.analyzerTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, e.analyzerTimeout)
		defer cancel()
	}

	fn(actx)
	return nil
}
