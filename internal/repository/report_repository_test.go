package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"go-image-analyzer/internal/analyzer"
	"go-image-analyzer/internal/apperrors"
	"go-image-analyzer/internal/report"
	"go-image-analyzer/internal/store"
)

func newTestRepository(t *testing.T) ReportRepository {
	t.Helper()
	results, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	return NewReportRepository(results)
}

func sampleReport(id, analyzedAt string) *report.Report {
	return &report.Report{
		ID:         id,
		FileName:   "photo.png",
		BlobPath:   "images/photo.png",
		AnalyzedAt: analyzedAt,
		Analyses: report.Analyses{
			Colors: analyzer.ColorResult{
				DominantColors: []analyzer.DominantColor{
					{Hex: "#e00000", RGB: analyzer.RGB{R: 224}, Percentage: 100.0},
				},
				TotalPixelsSampled: 2500,
			},
			Objects: analyzer.ObjectResult{
				Objects:     []analyzer.DetectedObject{{Name: "landscape", Confidence: 0.85}},
				ObjectCount: 1,
				Note:        "Mock analysis",
			},
			Text: analyzer.TextResult{Language: "unknown", Note: "Mock OCR"},
			Metadata: analyzer.MetadataResult{
				Width: 100, Height: 50, Format: "PNG", Mode: "RGBA",
				TotalPixels: 5000, Megapixels: 0.01,
			},
		},
		Summary: report.Summary{
			ImageSize:       "100x50",
			Format:          "PNG",
			DominantColor:   "#e00000",
			ObjectsDetected: 1,
		},
	}
}

func TestReportRepository_RoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	original := sampleReport("11111111-1111-1111-1111-111111111111", "2026-08-30T10:00:00.000000Z")

	ack, err := repo.SaveReport(ctx, original)
	require.NoError(t, err)
	require.Equal(t, original.ID, ack.ID)
	require.Equal(t, "stored", ack.Status)
	require.Equal(t, original.FileName, ack.FileName)
	require.Equal(t, original.AnalyzedAt, ack.AnalyzedAt)

	loaded, err := repo.GetReport(ctx, original.ID)
	require.NoError(t, err)
	require.Equal(t, original, loaded)
}

func TestReportRepository_UpsertIsRetrySafe(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	rep := sampleReport("22222222-2222-2222-2222-222222222222", "2026-08-30T10:00:00.000000Z")

	_, err := repo.SaveReport(ctx, rep)
	require.NoError(t, err)
	_, err = repo.SaveReport(ctx, rep)
	require.NoError(t, err)

	items, err := repo.ListReports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestReportRepository_GetReport_NotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.GetReport(context.Background(), "does-not-exist")
	require.Error(t, err)
	require.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestReportRepository_ListReports_OrderAndLimit(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		rep := sampleReport(
			fmt.Sprintf("00000000-0000-0000-0000-00000000000%d", i),
			fmt.Sprintf("2026-08-30T10:0%d:00.000000Z", i),
		)
		_, err := repo.SaveReport(ctx, rep)
		require.NoError(t, err)
	}

	items, err := repo.ListReports(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, "00000000-0000-0000-0000-000000000004", items[0].ID)
	require.Equal(t, "00000000-0000-0000-0000-000000000003", items[1].ID)

	all, err := repo.ListReports(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 5, "default limit of 10 returns all five")
	for i := 1; i < len(all); i++ {
		require.GreaterOrEqual(t, all[i-1].AnalyzedAt, all[i].AnalyzedAt)
	}
}
