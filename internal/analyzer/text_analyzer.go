package analyzer

import (
	"context"

	"go-image-analyzer/internal/logger"
)

// TextAnalyzer is a placeholder for future OCR. It accepts the job and
// always returns the fixed "no text found" result; it never fails.
type TextAnalyzer struct{}

func NewTextAnalyzer() *TextAnalyzer {
	return &TextAnalyzer{}
}

func (a *TextAnalyzer) Analyze(ctx context.Context, job Job) TextResult {
	logger.WithField("blob", job.BlobName).Debug("Analyzing text (OCR)")

	return TextResult{
		HasText:       false,
		ExtractedText: "",
		Confidence:    0.0,
		Language:      "unknown",
		Note:          "Mock OCR",
	}
}
