package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"go-image-analyzer/internal/apperrors"
	"go-image-analyzer/internal/report"
	"go-image-analyzer/internal/store"
)

// PartitionKey groups all analysis records under one partition; the row key
// is the report id.
const PartitionKey = "ImageAnalysis"

const defaultListLimit = 10

// Ack acknowledges a stored report.
type Ack struct {
	ID         string `json:"id"`
	FileName   string `json:"fileName"`
	Status     string `json:"status"`
	AnalyzedAt string `json:"analyzedAt"`
}

// ListItem is the summary projection returned by report listings.
type ListItem struct {
	ID         string         `json:"id"`
	FileName   string         `json:"fileName"`
	AnalyzedAt string         `json:"analyzedAt"`
	Summary    report.Summary `json:"summary"`
}

// ReportRepository persists and reads back analysis reports.
type ReportRepository interface {
	// SaveReport upserts the report under its id. Safe to retry.
	SaveReport(ctx context.Context, r *report.Report) (*Ack, error)

	// GetReport reads one report by id; not-found surfaces as an
	// apperrors not_found kind.
	GetReport(ctx context.Context, id string) (*report.Report, error)

	// ListReports returns up to limit summaries, most recent first.
	// A non-positive limit applies the default of 10.
	ListReports(ctx context.Context, limit int) ([]ListItem, error)
}

type tableReportRepository struct {
	results store.ResultStore
}

func NewReportRepository(results store.ResultStore) ReportRepository {
	return &tableReportRepository{results: results}
}

func (r *tableReportRepository) SaveReport(ctx context.Context, rep *report.Report) (*Ack, error) {
	summary, err := json.Marshal(rep.Summary)
	if err != nil {
		return nil, apperrors.NewInternalError("encode summary", err)
	}
	colors, err := json.Marshal(rep.Analyses.Colors)
	if err != nil {
		return nil, apperrors.NewInternalError("encode color analysis", err)
	}
	objects, err := json.Marshal(rep.Analyses.Objects)
	if err != nil {
		return nil, apperrors.NewInternalError("encode object analysis", err)
	}
	text, err := json.Marshal(rep.Analyses.Text)
	if err != nil {
		return nil, apperrors.NewInternalError("encode text analysis", err)
	}
	metadata, err := json.Marshal(rep.Analyses.Metadata)
	if err != nil {
		return nil, apperrors.NewInternalError("encode metadata analysis", err)
	}

	record := &store.Record{
		PartitionKey:     PartitionKey,
		RowKey:           rep.ID,
		FileName:         rep.FileName,
		BlobPath:         rep.BlobPath,
		AnalyzedAt:       rep.AnalyzedAt,
		Summary:          summary,
		ColorAnalysis:    colors,
		ObjectAnalysis:   objects,
		TextAnalysis:     text,
		MetadataAnalysis: metadata,
	}

	if err := r.results.Upsert(ctx, record); err != nil {
		return nil, apperrors.NewStorageError("store report", err)
	}

	return &Ack{
		ID:         rep.ID,
		FileName:   rep.FileName,
		Status:     "stored",
		AnalyzedAt: rep.AnalyzedAt,
	}, nil
}

func (r *tableReportRepository) GetReport(ctx context.Context, id string) (*report.Report, error) {
	record, err := r.results.Get(ctx, PartitionKey, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("report %s", id), err)
		}
		return nil, apperrors.NewStorageError("read report", err)
	}
	return decodeRecord(record)
}

func (r *tableReportRepository) ListReports(ctx context.Context, limit int) ([]ListItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	records, err := r.results.Query(ctx, PartitionKey)
	if err != nil {
		return nil, apperrors.NewStorageError("list reports", err)
	}

	items := make([]ListItem, 0, len(records))
	for _, record := range records {
		item := ListItem{
			ID:         record.RowKey,
			FileName:   record.FileName,
			AnalyzedAt: record.AnalyzedAt,
		}
		if err := json.Unmarshal(record.Summary, &item.Summary); err != nil {
			return nil, apperrors.NewInternalError(fmt.Sprintf("decode summary of %s", record.RowKey), err)
		}
		items = append(items, item)
	}

	// AnalyzedAt uses a fixed-width layout, so string order is time order.
	sort.Slice(items, func(i, j int) bool { return items[i].AnalyzedAt > items[j].AnalyzedAt })
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func decodeRecord(record *store.Record) (*report.Report, error) {
	rep := &report.Report{
		ID:         record.RowKey,
		FileName:   record.FileName,
		BlobPath:   record.BlobPath,
		AnalyzedAt: record.AnalyzedAt,
	}

	if err := json.Unmarshal(record.Summary, &rep.Summary); err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("decode summary of %s", record.RowKey), err)
	}
	if err := json.Unmarshal(record.ColorAnalysis, &rep.Analyses.Colors); err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("decode color analysis of %s", record.RowKey), err)
	}
	if err := json.Unmarshal(record.ObjectAnalysis, &rep.Analyses.Objects); err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("decode object analysis of %s", record.RowKey), err)
	}
	if err := json.Unmarshal(record.TextAnalysis, &rep.Analyses.Text); err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("decode text analysis of %s", record.RowKey), err)
	}
	if err := json.Unmarshal(record.MetadataAnalysis, &rep.Analyses.Metadata); err != nil {
		return nil, apperrors.NewInternalError(fmt.Sprintf("decode metadata analysis of %s", record.RowKey), err)
	}
	return rep, nil
}
