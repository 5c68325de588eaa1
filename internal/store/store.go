package store

import (
	"context"
	"errors"

	"gorm.io/datatypes"
)

// ErrNotFound indicates the requested record does not exist. Callers can
// react to it distinctly from infrastructure failures.
var ErrNotFound = errors.New("record not found")

// Record is the durable projection of one report. Nested documents are kept
// as serialized JSON columns next to the flat scalar fields; a record is
// written once per report and never logically updated (upsert exists only to
// make retries of the persistence step safe).
type Record struct {
	PartitionKey     string         `gorm:"primaryKey;size:64" json:"partitionKey"`
	RowKey           string         `gorm:"primaryKey;size:64" json:"rowKey"`
	FileName         string         `json:"fileName"`
	BlobPath         string         `json:"blobPath"`
	AnalyzedAt       string         `gorm:"index" json:"analyzedAt"`
	Summary          datatypes.JSON `json:"summary"`
	ColorAnalysis    datatypes.JSON `json:"colorAnalysis"`
	ObjectAnalysis   datatypes.JSON `json:"objectAnalysis"`
	TextAnalysis     datatypes.JSON `json:"textAnalysis"`
	MetadataAnalysis datatypes.JSON `json:"metadataAnalysis"`
}

func (Record) TableName() string {
	return "image_analysis_results"
}

// ResultStore is the key/value persistence contract for reports.
type ResultStore interface {
	// Upsert writes the record under its (partition, row) key, replacing
	// any existing row with the same key.
	Upsert(ctx context.Context, record *Record) error

	// Get fetches one record; returns ErrNotFound when the key is absent.
	Get(ctx context.Context, partitionKey, rowKey string) (*Record, error)

	// Query returns all records under a partition key.
	Query(ctx context.Context, partitionKey string) ([]Record, error)
}
