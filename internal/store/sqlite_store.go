package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

type sqliteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (and migrates) the sqlite database at the given path.
// Pass "file::memory:?cache=shared" for an in-memory store.
func NewSQLiteStore(path string) (ResultStore, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open result store: %w", err)
	}
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate result store: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Upsert(ctx context.Context, record *Record) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "partition_key"}, {Name: "row_key"}},
		UpdateAll: true,
	}).Create(record).Error
	if err != nil {
		return fmt.Errorf("upsert record %s/%s: %w", record.PartitionKey, record.RowKey, err)
	}
	return nil
}

func (s *sqliteStore) Get(ctx context.Context, partitionKey, rowKey string) (*Record, error) {
	var record Record
	err := s.db.WithContext(ctx).
		Where("partition_key = ? AND row_key = ?", partitionKey, rowKey).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, partitionKey, rowKey)
		}
		return nil, fmt.Errorf("get record %s/%s: %w", partitionKey, rowKey, err)
	}
	return &record, nil
}

func (s *sqliteStore) Query(ctx context.Context, partitionKey string) ([]Record, error) {
	var records []Record
	err := s.db.WithContext(ctx).
		Where("partition_key = ?", partitionKey).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("query partition %s: %w", partitionKey, err)
	}
	return records, nil
}
