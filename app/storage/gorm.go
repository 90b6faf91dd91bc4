package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord is the row shape GormStore persists blobs in.
type KVRecord struct {
	Key       string `gorm:"primaryKey;size:191"`
	Value     []byte `gorm:"type:longblob"`
	UpdatedAt time.Time
}

func (KVRecord) TableName() string {
	return "kv_records"
}

// GormStore persists values in a single database table, one row per key.
// The HTTP shell runs on this backend so guest carts survive restarts.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (g *GormStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var record KVRecord
	err := g.db.WithContext(ctx).Where("`key` = ?", key).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return record.Value, true, nil
}

func (g *GormStore) Set(ctx context.Context, key string, value []byte) error {
	record := KVRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&record).Error
}

func (g *GormStore) Delete(ctx context.Context, key string) error {
	return g.db.WithContext(ctx).Where("`key` = ?", key).Delete(&KVRecord{}).Error
}
