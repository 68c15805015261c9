package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/teammate-generator/internal/domain"
)

// ImageFilter narrows ListImages. Empty fields are ignored.
type ImageFilter struct {
	UserID     string
	TeammateID string
	Provider   string
	// Type matches the "type" key inside the parameters JSON (e.g. human-face).
	Type  string
	Limit int
}

// CreateImage inserts a generated image row. ID and CreatedAt are filled
// when empty.
func CreateImage(ctx context.Context, db *gorm.DB, img *domain.GeneratedImage) error {
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now().UTC()
	}
	return db.WithContext(ctx).Create(img).Error
}

// ListImages returns stored images newest first.
func ListImages(ctx context.Context, db *gorm.DB, f ImageFilter) ([]domain.GeneratedImage, error) {
	q := db.WithContext(ctx).Model(&domain.GeneratedImage{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.TeammateID != "" {
		q = q.Where("teammate_id = ?", f.TeammateID)
	}
	if f.Provider != "" {
		q = q.Where("provider = ?", f.Provider)
	}
	if f.Type != "" {
		q = q.Where(datatypes.JSONQuery("parameters").Equals(f.Type, "type"))
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []domain.GeneratedImage
	if err := q.Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// CountImagesByStatus counts images with the given status.
func CountImagesByStatus(ctx context.Context, db *gorm.DB, status string) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.GeneratedImage{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
