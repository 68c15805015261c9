package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/teammate-generator/internal/domain"
)

// TeammatesStats returns the row count and the greatest UpdatedAt for the
// teammates matched by f (Limit is ignored). The HTTP layer derives a weak
// ETag from it. When nothing matches, maxUpdatedAt is nil.
func TeammatesStats(ctx context.Context, db *gorm.DB, f TeammateFilter) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Teammate{})
	if f.UserID != "" {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
