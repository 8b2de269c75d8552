package diagnosis

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrNotFound = errors.New("analysis not found")

// AuditStore persists analysis logs.
type AuditStore interface {
	Record(ctx context.Context, log *AnalysisLog) error
	Get(ctx context.Context, id string) (*AnalysisLog, error)
	Recent(ctx context.Context, limit int) ([]AnalysisLog, error)
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) AutoMigrate() error {
	return r.db.AutoMigrate(&AnalysisLog{})
}

func (r *Repository) Record(ctx context.Context, log *AnalysisLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *Repository) Get(ctx context.Context, id string) (*AnalysisLog, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrNotFound
	}
	var log AnalysisLog
	result := r.db.WithContext(ctx).First(&log, "id = ?", parsed)
	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &log, result.Error
}

// Recent returns the newest logs, at most limit (default 50).
func (r *Repository) Recent(ctx context.Context, limit int) ([]AnalysisLog, error) {
	if limit <= 0 {
		limit = 50
	}
	var logs []AnalysisLog
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

func (r *Repository) CleanupExpired(ctx context.Context, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	cutoff := time.Now().UTC().Add(-ttl)
	return r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&AnalysisLog{}).Error
}
