package report

import (
	"testing"
	"time"

	"go-image-analyzer/internal/analyzer"
)

func sampleResults() (analyzer.ColorResult, analyzer.ObjectResult, analyzer.TextResult, analyzer.MetadataResult) {
	colors := analyzer.ColorResult{
		DominantColors: []analyzer.DominantColor{
			{Hex: "#e00000", RGB: analyzer.RGB{R: 224}, Percentage: 100.0},
		},
		IsGrayscale:        false,
		TotalPixelsSampled: 2500,
	}
	objects := analyzer.ObjectResult{
		Objects: []analyzer.DetectedObject{
			{Name: "landscape", Confidence: 0.85},
			{Name: "digital image", Confidence: 0.99},
		},
		ObjectCount: 2,
	}
	text := analyzer.TextResult{Language: "unknown"}
	metadata := analyzer.MetadataResult{
		Width: 100, Height: 50, Format: "PNG", Mode: "RGBA",
		TotalPixels: 5000, Megapixels: 0.01,
	}
	return colors, objects, text, metadata
}

func TestBuild_Summary(t *testing.T) {
	colors, objects, text, metadata := sampleResults()

	rep := Build("images/photo.png", colors, objects, text, metadata)

	if rep.ID == "" {
		t.Error("Expected a generated id")
	}
	if rep.FileName != "photo.png" {
		t.Errorf("Expected fileName photo.png, got %s", rep.FileName)
	}
	if rep.BlobPath != "images/photo.png" {
		t.Errorf("Expected blobPath images/photo.png, got %s", rep.BlobPath)
	}
	if _, err := time.Parse(TimeLayout, rep.AnalyzedAt); err != nil {
		t.Errorf("AnalyzedAt not in expected layout: %v", err)
	}

	if rep.Summary.ImageSize != "100x50" {
		t.Errorf("Expected imageSize 100x50, got %s", rep.Summary.ImageSize)
	}
	if rep.Summary.Format != "PNG" {
		t.Errorf("Expected format PNG, got %s", rep.Summary.Format)
	}
	if rep.Summary.DominantColor != "#e00000" {
		t.Errorf("Expected dominantColor #e00000, got %s", rep.Summary.DominantColor)
	}
	if rep.Summary.ObjectsDetected != 2 {
		t.Errorf("Expected 2 objects detected, got %d", rep.Summary.ObjectsDetected)
	}
	if rep.Summary.HasText {
		t.Error("Expected hasText false")
	}
	if rep.Summary.IsGrayscale {
		t.Error("Expected isGrayscale false")
	}
}

func TestBuild_FileNameWithoutSeparator(t *testing.T) {
	colors, objects, text, metadata := sampleResults()

	rep := Build("photo.png", colors, objects, text, metadata)

	if rep.FileName != "photo.png" {
		t.Errorf("Expected whole name as fileName, got %s", rep.FileName)
	}
}

func TestBuild_DegradedResults(t *testing.T) {
	rep := Build("images/broken.png",
		analyzer.ColorResult{Error: "fetch failed"},
		analyzer.ObjectResult{Error: "fetch failed"},
		analyzer.TextResult{Language: "unknown"},
		analyzer.MetadataResult{Format: "Unknown", Error: "fetch failed"},
	)

	if rep.Summary.ImageSize != "0x0" {
		t.Errorf("Expected imageSize 0x0, got %s", rep.Summary.ImageSize)
	}
	if rep.Summary.Format != "Unknown" {
		t.Errorf("Expected format Unknown, got %s", rep.Summary.Format)
	}
	if rep.Summary.DominantColor != "N/A" {
		t.Errorf("Expected dominantColor N/A, got %s", rep.Summary.DominantColor)
	}
	if rep.Summary.ObjectsDetected != 0 {
		t.Errorf("Expected 0 objects detected, got %d", rep.Summary.ObjectsDetected)
	}
}

func TestBuild_DeterministicApartFromIDAndTime(t *testing.T) {
	colors, objects, text, metadata := sampleResults()

	first := Build("images/photo.png", colors, objects, text, metadata)
	second := Build("images/photo.png", colors, objects, text, metadata)

	if first.ID == second.ID {
		t.Error("Each build must generate a fresh id")
	}
	if first.Summary != second.Summary {
		t.Errorf("Summaries differ: %+v vs %+v", first.Summary, second.Summary)
	}
	if first.Analyses.Objects.ObjectCount != second.Analyses.Objects.ObjectCount ||
		first.Analyses.Colors.TotalPixelsSampled != second.Analyses.Colors.TotalPixelsSampled {
		t.Error("Analyses must be identical for identical inputs")
	}
}
