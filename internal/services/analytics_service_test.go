package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/repo"
)

func newAnalytics(t *testing.T, now time.Time) *AnalyticsService {
	t.Helper()
	s := NewAnalyticsService(newTestDB(t), 5*time.Minute, 24*time.Hour, 0)
	s.Now = func() time.Time { return now }
	return s
}

func visit(visitor, session string, at time.Time) TrackRequest {
	return TrackRequest{VisitorID: visitor, SessionID: session, Page: "/", Timestamp: at, IP: "1.2.3.4"}
}

func TestTrack_DedupPerDay(t *testing.T) {
	day := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s := newAnalytics(t, day)
	ctx := context.Background()

	for _, at := range []time.Time{day, day.Add(time.Hour), day.Add(20 * time.Hour)} {
		if err := s.Track(ctx, visit("v1", "s1", at)); err != nil {
			t.Fatalf("Track: %v", err)
		}
	}

	var n int64
	s.DB.Model(&domain.VisitorTracking{}).Count(&n)
	if n != 2 {
		t.Fatalf("visits = %d, want 2 (same day deduped, next day stored)", n)
	}

	var sessions int64
	s.DB.Model(&domain.UserSession{}).Count(&sessions)
	if sessions != 1 {
		t.Fatalf("sessions = %d", sessions)
	}
}

func TestStats_CountsThenSweeps(t *testing.T) {
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	s := newAnalytics(t, now)
	ctx := context.Background()

	if err := s.Track(ctx, visit("v1", "fresh", now.Add(-time.Minute))); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if err := s.Track(ctx, visit("v2", "stale", now.Add(-6*time.Minute))); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if err := s.Track(ctx, visit("v3", "old", now.Add(-48*time.Hour))); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if err := repo.CreateHistory(ctx, s.DB, &domain.GenerationHistory{UserID: "u", Prompt: "p", Success: true}); err != nil {
		t.Fatalf("history: %v", err)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalVisitors != 3 || st.TodayVisitors != 2 || st.ActiveUsers != 1 || st.TotalTeammatesGenerated != 1 {
		t.Fatalf("stats = %+v", st)
	}
	if st.Error != "" {
		t.Fatalf("unexpected error field %q", st.Error)
	}

	var stale domain.UserSession
	if err := s.DB.Where("session_id = ?", "stale").First(&stale).Error; err != nil {
		t.Fatalf("load session: %v", err)
	}
	if stale.IsActive {
		t.Fatalf("session idle for 6 minutes should be inactive after stats")
	}
}

func TestStats_MockOnDatabaseError(t *testing.T) {
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	s := newAnalytics(t, now)
	sqlDB, err := s.DB.DB()
	if err != nil {
		t.Fatalf("DB: %v", err)
	}
	_ = sqlDB.Close()

	st, err := s.Stats(context.Background())
	if err == nil {
		t.Fatalf("want error from closed database")
	}
	if st.TotalVisitors != 12847 || st.TotalImagesGenerated != 8923 || st.Error == "" {
		t.Fatalf("mock stats = %+v", st)
	}
	if !st.LastUpdated.Equal(now) {
		t.Fatalf("lastUpdated = %v", st.LastUpdated)
	}
}

func TestStats_Cached(t *testing.T) {
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	s := NewAnalyticsService(newTestDB(t), 5*time.Minute, 24*time.Hour, time.Minute)
	s.Now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := s.Stats(ctx); err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if err := s.Track(ctx, visit("v1", "s1", now)); err != nil {
		t.Fatalf("Track: %v", err)
	}
	st, _ := s.Stats(ctx)
	if st.TotalVisitors != 0 {
		t.Fatalf("cached stats should not see new visit, got %d", st.TotalVisitors)
	}
	if err := s.Apply(ctx, ActionCleanup); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	st, _ = s.Stats(ctx)
	if st.TotalVisitors != 1 {
		t.Fatalf("cleanup should drop cache, got %d", st.TotalVisitors)
	}
}

func TestApply(t *testing.T) {
	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)
	s := newAnalytics(t, now)
	ctx := context.Background()

	if err := s.Track(ctx, visit("v1", "old", now.Add(-25*time.Hour))); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if err := s.Track(ctx, visit("v2", "recent", now.Add(-time.Hour))); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if err := s.Apply(ctx, "cleanup"); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	var active int64
	s.DB.Model(&domain.UserSession{}).Where("is_active = ?", true).Count(&active)
	if active != 1 {
		t.Fatalf("active sessions = %d", active)
	}

	if err := s.Apply(ctx, "reset"); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("unknown action err = %v", err)
	}
}

func TestRecentVisits(t *testing.T) {
	now := time.Date(2025, 3, 30, 12, 0, 0, 0, time.UTC)
	s := newAnalytics(t, now)
	ctx := context.Background()

	_ = s.Track(ctx, visit("v1", "a", now.AddDate(0, 0, -40)))
	_ = s.Track(ctx, visit("v2", "b", now.AddDate(0, 0, -2)))
	_ = s.Track(ctx, visit("v3", "c", now.Add(-time.Hour)))

	got, err := s.RecentVisits(ctx, 30)
	if err != nil || len(got) != 2 {
		t.Fatalf("RecentVisits = %d, %v", len(got), err)
	}
	if got[0].VisitorID != "v3" {
		t.Fatalf("want newest first, got %s", got[0].VisitorID)
	}
}
