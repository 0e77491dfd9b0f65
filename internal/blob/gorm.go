package blob

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Blob is the single-table schema for SQL-backed blob storage.
type Blob struct {
	Key   string `gorm:"primaryKey"`
	Value []byte
}

// TableName specifies the table name for GORM
func (Blob) TableName() string {
	return "blobs"
}

// GormStore is a blob store backed by a single SQL table, typically a local
// SQLite file. It is the single-context analog of browser local storage:
// there is no cross-process change channel, so Watch returns a nil channel.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore on db and migrates the blobs table.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Blob{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// Get fetches the value stored under key.
func (s *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var rec Blob
	err := s.db.WithContext(ctx).First(&rec, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return rec.Value, true, nil
}

// Set upserts the value stored under key.
func (s *GormStore) Set(ctx context.Context, key string, value []byte) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Blob{Key: key, Value: value}).Error
}

// Watch returns a nil channel: a local file has no change notifications.
func (s *GormStore) Watch(context.Context) (<-chan string, error) {
	return nil, nil
}

// Close releases the underlying database handle.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
