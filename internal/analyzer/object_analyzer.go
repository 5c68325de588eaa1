package analyzer

import (
	"context"
	"fmt"

	"go-image-analyzer/internal/logger"
	"go-image-analyzer/internal/storage"
)

const highResolutionPixels = 1_000_000

// ObjectAnalyzer derives labeled, confidence-scored tags from image
// dimensions only. It is a stand-in for a real detector; the ordered tag
// contract must survive that swap.
type ObjectAnalyzer struct {
	blobs storage.BlobSource
}

func NewObjectAnalyzer(blobs storage.BlobSource) *ObjectAnalyzer {
	return &ObjectAnalyzer{blobs: blobs}
}

func (a *ObjectAnalyzer) Analyze(ctx context.Context, job Job) ObjectResult {
	logger.WithField("blob", job.BlobName).Debug("Analyzing objects")

	data, err := a.blobs.Fetch(ctx, job.BlobName)
	if err != nil {
		return objectFailure(job, err)
	}

	cfg, _, err := decodeImageConfig(data)
	if err != nil {
		return objectFailure(job, fmt.Errorf("decode image: %w", err))
	}

	objects := make([]DetectedObject, 0, 3)
	switch {
	case cfg.Width > cfg.Height:
		objects = append(objects, DetectedObject{Name: "landscape", Confidence: 0.85})
	case cfg.Height > cfg.Width:
		objects = append(objects, DetectedObject{Name: "portrait", Confidence: 0.82})
	default:
		objects = append(objects, DetectedObject{Name: "square composition", Confidence: 0.90})
	}

	if cfg.Width*cfg.Height > highResolutionPixels {
		objects = append(objects, DetectedObject{Name: "high-resolution scene", Confidence: 0.78})
	}

	objects = append(objects, DetectedObject{Name: "digital image", Confidence: 0.99})

	return ObjectResult{
		Objects:     objects,
		ObjectCount: len(objects),
		Note:        "Mock analysis",
	}
}

func objectFailure(job Job, err error) ObjectResult {
	logger.WithError(err).WithField("blob", job.BlobName).Warn("Object analysis failed")
	return ObjectResult{Objects: []DetectedObject{}, Error: err.Error()}
}
