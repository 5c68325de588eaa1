package analyzer

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strings"

	"go-image-analyzer/internal/logger"
	"go-image-analyzer/internal/storage"
)

// MetadataAnalyzer extracts dimensions, format and color mode from the image
// header without decoding pixel data.
type MetadataAnalyzer struct {
	blobs storage.BlobSource
}

func NewMetadataAnalyzer(blobs storage.BlobSource) *MetadataAnalyzer {
	return &MetadataAnalyzer{blobs: blobs}
}

func (a *MetadataAnalyzer) Analyze(ctx context.Context, job Job) MetadataResult {
	logger.WithField("blob", job.BlobName).Debug("Analyzing metadata")

	data, err := a.blobs.Fetch(ctx, job.BlobName)
	if err != nil {
		return metadataFailure(job, err)
	}

	cfg, format, err := decodeImageConfig(data)
	if err != nil {
		return metadataFailure(job, fmt.Errorf("decode image: %w", err))
	}

	totalPixels := cfg.Width * cfg.Height
	sizeKB := job.BlobSizeKB

	return MetadataResult{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      formatName(format),
		Mode:        colorMode(cfg.ColorModel),
		TotalPixels: totalPixels,
		Megapixels:  math.Round(float64(totalPixels)/1_000_000*100) / 100,
		SizeKB:      &sizeKB,
	}
}

func metadataFailure(job Job, err error) MetadataResult {
	logger.WithError(err).WithField("blob", job.BlobName).Warn("Metadata analysis failed")
	return MetadataResult{Format: "Unknown", Error: err.Error()}
}

func formatName(format string) string {
	if format == "" {
		return "Unknown"
	}
	return strings.ToUpper(format)
}

// colorMode maps a decoded color model onto the mode names the stored
// records use ("RGB", "RGBA", "L", ...).
func colorMode(model color.Model) string {
	switch model {
	case color.GrayModel, color.Gray16Model:
		return "L"
	case color.RGBAModel, color.RGBA64Model, color.NRGBAModel, color.NRGBA64Model:
		return "RGBA"
	case color.CMYKModel:
		return "CMYK"
	case color.YCbCrModel:
		return "RGB"
	}
	if _, ok := model.(color.Palette); ok {
		return "P"
	}
	return "RGB"
}
