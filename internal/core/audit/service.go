package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service persists the admin audit trail
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Log inserts an entry, assigning its ID and timestamp when missing
func (s *Service) Log(ctx context.Context, entry *Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = s.now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}

// List returns entries matching filter, newest first
func (s *Service) List(ctx context.Context, filter Filter) (*Page, error) {
	filter.Normalize()

	scope := func(db *gorm.DB) *gorm.DB {
		if filter.Action != "" {
			db = db.Where("action = ?", filter.Action)
		}
		if filter.Entity != "" {
			db = db.Where("entity = ?", filter.Entity)
		}
		if filter.EntityID != "" {
			db = db.Where("entity_id = ?", filter.EntityID)
		}
		if filter.Since != nil {
			db = db.Where("created_at >= ?", *filter.Since)
		}
		return db
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&Entry{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count audit entries: %w", err)
	}

	var entries []Entry
	err := s.db.WithContext(ctx).
		Scopes(scope).
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return NewPage(entries, total, filter), nil
}

// Purge deletes entries older than retention
func (s *Service) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, fmt.Errorf("audit retention must be positive, got %s", retention)
	}

	cutoff := s.now().Add(-retention)
	result := s.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&Entry{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge audit entries: %w", result.Error)
	}

	log.Info().Int64("deleted", result.RowsAffected).Dur("retention", retention).Msg("audit log purged")
	return result.RowsAffected, nil
}
