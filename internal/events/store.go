package events

import (
	"context"

	"ledger_system/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// Store persists notifications in the events table
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store backed by db
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Publish inserts e
func (s *Store) Publish(ctx context.Context, e domain.Event) error {
	return s.db.WithContext(ctx).Create(&e).Error
}

// List returns persisted events newest first, optionally filtered by kind
func (s *Store) List(ctx context.Context, kind domain.EventKind, offset, limit int) ([]domain.Event, int64, error) {
	query := s.db.WithContext(ctx).Model(&domain.Event{}) // Start building the query
	if kind != "" {
		query = query.Where("kind = ?", kind) // Filter by event kind
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Event
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
