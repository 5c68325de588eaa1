package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-image-analyzer/internal/analyzer"
)

// TimeLayout is the fixed-width UTC timestamp format used for AnalyzedAt.
// Fixed width keeps lexicographic order equal to chronological order, which
// the list query relies on.
const TimeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Report is the aggregated result of one job. It is built exactly once per
// successful run and immutable thereafter; ID is the sole durable key.
type Report struct {
	ID         string   `json:"id"`
	FileName   string   `json:"fileName"`
	BlobPath   string   `json:"blobPath"`
	AnalyzedAt string   `json:"analyzedAt"`
	Analyses   Analyses `json:"analyses"`
	Summary    Summary  `json:"summary"`
}

type Analyses struct {
	Colors   analyzer.ColorResult    `json:"colors"`
	Objects  analyzer.ObjectResult   `json:"objects"`
	Text     analyzer.TextResult     `json:"text"`
	Metadata analyzer.MetadataResult `json:"metadata"`
}

// Summary is the compact view derived from the four analyses. Derivation
// tolerates degraded analyzer output and falls back to neutral defaults.
type Summary struct {
	ImageSize       string `json:"imageSize"`
	Format          string `json:"format"`
	DominantColor   string `json:"dominantColor"`
	ObjectsDetected int    `json:"objectsDetected"`
	HasText         bool   `json:"hasText"`
	IsGrayscale     bool   `json:"isGrayscale"`
}

// Build merges the four analyzer outputs into a Report with a fresh id and a
// UTC timestamp. Aside from those two values it is a pure function of its
// inputs and never fails.
func Build(blobName string, colors analyzer.ColorResult, objects analyzer.ObjectResult,
	text analyzer.TextResult, metadata analyzer.MetadataResult) *Report {

	fileName := blobName
	if i := strings.LastIndex(blobName, "/"); i >= 0 {
		fileName = blobName[i+1:]
	}

	format := metadata.Format
	if format == "" {
		format = "Unknown"
	}

	dominantColor := "N/A"
	if len(colors.DominantColors) > 0 {
		dominantColor = colors.DominantColors[0].Hex
	}

	return &Report{
		ID:         uuid.NewString(),
		FileName:   fileName,
		BlobPath:   blobName,
		AnalyzedAt: time.Now().UTC().Format(TimeLayout),
		Analyses: Analyses{
			Colors:   colors,
			Objects:  objects,
			Text:     text,
			Metadata: metadata,
		},
		Summary: Summary{
			ImageSize:       fmt.Sprintf("%dx%d", metadata.Width, metadata.Height),
			Format:          format,
			DominantColor:   dominantColor,
			ObjectsDetected: objects.ObjectCount,
			HasText:         text.HasText,
			IsGrayscale:     colors.IsGrayscale,
		},
	}
}
