package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/teammate-generator/internal/domain"
)

// HasVisitBetween reports whether visitorID already has a visit in [from, to).
func HasVisitBetween(ctx context.Context, db *gorm.DB, visitorID string, from, to time.Time) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.VisitorTracking{}).
		Where("visitor_id = ? AND visit_time >= ? AND visit_time < ?", visitorID, from, to).
		Count(&n).Error
	return n > 0, err
}

// CreateVisit inserts a visit row.
func CreateVisit(ctx context.Context, db *gorm.DB, v *domain.VisitorTracking) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(v).Error
}

// ListVisitsSince returns visits at or after since, newest first.
func ListVisitsSince(ctx context.Context, db *gorm.DB, since time.Time, limit int) ([]domain.VisitorTracking, error) {
	q := db.WithContext(ctx).Where("visit_time >= ?", since).Order("visit_time DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.VisitorTracking
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// UpsertSession creates the session on first sight, otherwise refreshes
// LastActivity and marks it active again. Returns true when a row was created.
func UpsertSession(ctx context.Context, db *gorm.DB, s *domain.UserSession) (bool, error) {
	var existing domain.UserSession
	err := db.WithContext(ctx).Where("session_id = ?", s.SessionID).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		s.IsActive = true
		return true, db.WithContext(ctx).Create(s).Error
	case err != nil:
		return false, err
	}
	return false, db.WithContext(ctx).Model(&domain.UserSession{}).
		Where("session_id = ?", s.SessionID).
		Updates(map[string]any{"last_activity": s.LastActivity, "is_active": true}).Error
}

// DeactivateSessionsBefore clears IsActive on sessions idle since before
// cutoff and returns how many rows changed.
func DeactivateSessionsBefore(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).Model(&domain.UserSession{}).
		Where("is_active = ? AND last_activity < ?", true, cutoff).
		Update("is_active", false)
	return res.RowsAffected, res.Error
}

// CountDistinctVisitors counts distinct visitor ids with a visit at or after
// since. A zero since counts all time.
func CountDistinctVisitors(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	q := db.WithContext(ctx).Model(&domain.VisitorTracking{})
	if !since.IsZero() {
		q = q.Where("visit_time >= ?", since)
	}
	var n int64
	err := q.Distinct("visitor_id").Count(&n).Error
	return n, err
}

// CountActiveSessions counts active sessions seen at or after since.
func CountActiveSessions(ctx context.Context, db *gorm.DB, since time.Time) (int64, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.UserSession{}).
		Where("is_active = ? AND last_activity >= ?", true, since).
		Count(&n).Error
	return n, err
}
