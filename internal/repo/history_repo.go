package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/teammate-generator/internal/domain"
)

// CreateHistory appends one generation attempt to the audit log.
func CreateHistory(ctx context.Context, db *gorm.DB, h *domain.GenerationHistory) error {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(h).Error
}

// ListHistory returns a user's attempts newest first.
func ListHistory(ctx context.Context, db *gorm.DB, userID string, limit int) ([]domain.GenerationHistory, error) {
	q := db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.GenerationHistory
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountSuccessfulHistory counts attempts that produced an image.
func CountSuccessfulHistory(ctx context.Context, db *gorm.DB) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.GenerationHistory{}).
		Where("success = ?", true).
		Count(&n).Error
	return n, err
}
