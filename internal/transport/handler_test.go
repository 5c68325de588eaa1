package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"go-image-analyzer/internal/analyzer"
	"go-image-analyzer/internal/config"
	"go-image-analyzer/internal/report"
	"go-image-analyzer/internal/repository"
	"go-image-analyzer/internal/store"
)

func newTestHandler(t *testing.T) (http.Handler, repository.ReportRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	results, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "results.db"))
	require.NoError(t, err)
	reports := repository.NewReportRepository(results)

	cfg := &config.Config{RequestTimeout: 5 * time.Second}
	return NewHandler(reports, cfg), reports
}

func seedReport(t *testing.T, reports repository.ReportRepository, id, analyzedAt string) {
	t.Helper()
	rep := &report.Report{
		ID:         id,
		FileName:   "photo.png",
		BlobPath:   "images/photo.png",
		AnalyzedAt: analyzedAt,
		Analyses: report.Analyses{
			Colors:   analyzer.ColorResult{DominantColors: []analyzer.DominantColor{}},
			Objects:  analyzer.ObjectResult{Objects: []analyzer.DetectedObject{}},
			Text:     analyzer.TextResult{Language: "unknown"},
			Metadata: analyzer.MetadataResult{Width: 100, Height: 50, Format: "PNG"},
		},
		Summary: report.Summary{ImageSize: "100x50", Format: "PNG", DominantColor: "N/A"},
	}
	_, err := reports.SaveReport(context.Background(), rep)
	require.NoError(t, err)
}

func TestGetResult_ReturnsStoredReport(t *testing.T) {
	handler, reports := newTestHandler(t)
	seedReport(t, reports, "report-1", "2026-08-30T10:00:00.000000Z")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/results/report-1", nil)
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var rep report.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	require.Equal(t, "report-1", rep.ID)
	require.Equal(t, "photo.png", rep.FileName)
	require.Equal(t, "100x50", rep.Summary.ImageSize)
}

func TestGetResult_UnknownIDReturnsErrorBody(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/results/absent", nil)
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "error")
}

func TestListResults_LimitAndOrder(t *testing.T) {
	handler, reports := newTestHandler(t)
	for i := 0; i < 5; i++ {
		seedReport(t, reports,
			fmt.Sprintf("report-%d", i),
			fmt.Sprintf("2026-08-30T10:0%d:00.000000Z", i),
		)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/results?limit=2", nil)
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count   int                   `json:"count"`
		Results []repository.ListItem `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	require.Len(t, body.Results, 2)
	require.Equal(t, "report-4", body.Results[0].ID)
	require.Equal(t, "report-3", body.Results[1].ID)
}

func TestListResults_DefaultLimit(t *testing.T) {
	handler, reports := newTestHandler(t)
	for i := 0; i < 12; i++ {
		seedReport(t, reports,
			fmt.Sprintf("report-%02d", i),
			fmt.Sprintf("2026-08-30T10:%02d:00.000000Z", i),
		)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/results", nil)
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, 10, body.Count)
}

func TestHealthCheck(t *testing.T) {
	handler, _ := newTestHandler(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
