package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/teammate-generator/internal/domain"
)

// TeammateFilter narrows ListTeammates. Empty fields are ignored.
type TeammateFilter struct {
	UserID   string
	Category string
	Limit    int
}

// CreateTeammate inserts a teammate row, assigning an ID when empty.
func CreateTeammate(ctx context.Context, db *gorm.DB, tm *domain.Teammate) error {
	if tm.ID == "" {
		tm.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tm.CreatedAt.IsZero() {
		tm.CreatedAt = now
	}
	tm.UpdatedAt = now
	return db.WithContext(ctx).Create(tm).Error
}

// GetTeammate fetches a teammate by id, or ErrNotFound.
func GetTeammate(ctx context.Context, db *gorm.DB, id string) (*domain.Teammate, error) {
	var tm domain.Teammate
	err := db.WithContext(ctx).First(&tm, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tm, nil
}

// ListTeammates returns teammates newest first.
func ListTeammates(ctx context.Context, db *gorm.DB, f TeammateFilter) ([]domain.Teammate, error) {
	q := db.WithContext(ctx).Model(&domain.Teammate{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	var out []domain.Teammate
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
