package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blobRecord struct {
	Key       string `gorm:"column:blob_key;primaryKey;size:64"`
	Value     []byte `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

func (blobRecord) TableName() string {
	return "blobs"
}

// SQLiteBlobStore keeps blobs in an embedded database table.
type SQLiteBlobStore struct {
	db *gorm.DB
}

// NewSQLiteBlobStore migrates the blobs table and returns the store.
func NewSQLiteBlobStore(db *gorm.DB) (*SQLiteBlobStore, error) {
	if err := db.AutoMigrate(&blobRecord{}); err != nil {
		return nil, fmt.Errorf("migrate blobs table: %w", err)
	}
	return &SQLiteBlobStore{db: db}, nil
}

// Get loads the value stored under key.
func (s *SQLiteBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var record blobRecord
	err := s.db.WithContext(ctx).Where("blob_key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %s: %w", key, err)
	}
	return record.Value, nil
}

// Put upserts the value.
func (s *SQLiteBlobStore) Put(ctx context.Context, key string, value []byte) error {
	record := blobRecord{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("put blob %s: %w", key, err)
	}
	return nil
}

// Delete removes the row if present.
func (s *SQLiteBlobStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("blob_key = ?", key).Delete(&blobRecord{}).Error; err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}
