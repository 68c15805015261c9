package services

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/observability"
	"github.com/tbourn/teammate-generator/internal/repo"
)

// Default analytics timings.
const (
	DefaultSessionTimeout = 5 * time.Minute
	DefaultCleanupAge     = 24 * time.Hour

	// RecentVisitsLimit caps GET /analytics/track.
	RecentVisitsLimit = 100

	// ActionCleanup is the only action accepted by POST /analytics/stats.
	ActionCleanup = "cleanup"

	statsCacheKey = "analytics:stats"
)

// Stats is the aggregate counter payload.
type Stats struct {
	TotalVisitors           int64     `json:"totalVisitors"`
	TodayVisitors           int64     `json:"todayVisitors"`
	ActiveUsers             int64     `json:"activeUsers"`
	TotalTeammatesGenerated int64     `json:"totalTeammatesGenerated"`
	TotalImagesGenerated    int64     `json:"totalImagesGenerated"`
	LastUpdated             time.Time `json:"lastUpdated"`
	Error                   string    `json:"error,omitempty"`
}

// MockStats is served when the database cannot be queried.
func MockStats(now time.Time) Stats {
	return Stats{
		TotalVisitors:           12847,
		TodayVisitors:           234,
		ActiveUsers:             7,
		TotalTeammatesGenerated: 3456,
		TotalImagesGenerated:    8923,
		LastUpdated:             now,
		Error:                   "Using mock data - database unavailable",
	}
}

// TrackRequest is one validated page visit.
type TrackRequest struct {
	VisitorID string
	SessionID string
	Page      string
	Timestamp time.Time
	UserAgent string
	Referrer  string
	IP        string
}

// AnalyticsService records visits and sessions and derives counters.
type AnalyticsService struct {
	DB *gorm.DB

	// SessionTimeout is the inactivity window for active sessions.
	SessionTimeout time.Duration
	// CleanupAge is the idle threshold of the cleanup action.
	CleanupAge time.Duration
	// Cache memoizes Stats when non-nil.
	Cache *cache.Cache

	// Now is overridable in tests.
	Now func() time.Time
}

// NewAnalyticsService builds the tracker. statsTTL > 0 enables memoization.
func NewAnalyticsService(db *gorm.DB, sessionTimeout, cleanupAge, statsTTL time.Duration) *AnalyticsService {
	s := &AnalyticsService{DB: db, SessionTimeout: sessionTimeout, CleanupAge: cleanupAge}
	if statsTTL > 0 {
		s.Cache = cache.New(statsTTL, 2*statsTTL)
	}
	return s
}

func (s *AnalyticsService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *AnalyticsService) sessionTimeout() time.Duration {
	if s.SessionTimeout > 0 {
		return s.SessionTimeout
	}
	return DefaultSessionTimeout
}

// Track stores at most one visit per visitor per UTC day and upserts the
// session, refreshing its activity.
func (s *AnalyticsService) Track(ctx context.Context, req TrackRequest) error {
	ctx, span := otel.Tracer("services/AnalyticsService").Start(ctx, "Track",
		trace.WithAttributes(
			attribute.String("visitor.id", req.VisitorID),
			attribute.String("session.id", req.SessionID),
		),
	)
	defer span.End()

	ts := req.Timestamp.UTC()
	if ts.IsZero() {
		ts = s.now()
	}
	dayStart := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)

	seen, err := repo.HasVisitBetween(ctx, s.DB, req.VisitorID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return err
	}
	if !seen {
		v := &domain.VisitorTracking{
			VisitorID: req.VisitorID,
			SessionID: req.SessionID,
			IPAddress: optional(req.IP),
			UserAgent: optional(req.UserAgent),
			Referrer:  optional(req.Referrer),
			Page:      req.Page,
			VisitTime: ts,
		}
		if err := repo.CreateVisit(ctx, s.DB, v); err != nil {
			return err
		}
	}

	_, err = repo.UpsertSession(ctx, s.DB, &domain.UserSession{
		SessionID:    req.SessionID,
		VisitorID:    req.VisitorID,
		StartTime:    ts,
		LastActivity: ts,
		IPAddress:    optional(req.IP),
		UserAgent:    optional(req.UserAgent),
	})
	return err
}

// RecentVisits returns up to RecentVisitsLimit visits from the last days,
// newest first.
func (s *AnalyticsService) RecentVisits(ctx context.Context, days int) ([]domain.VisitorTracking, error) {
	since := s.now().AddDate(0, 0, -days)
	return repo.ListVisitsSince(ctx, s.DB, since, RecentVisitsLimit)
}

// Stats computes the counters, then sweeps idle sessions. The counts are
// read before the sweep. On a query error the mock payload is returned
// together with the error.
func (s *AnalyticsService) Stats(ctx context.Context) (Stats, error) {
	ctx, span := otel.Tracer("services/AnalyticsService").Start(ctx, "Stats")
	defer span.End()

	st, err := s.counters(ctx)
	if err != nil {
		return MockStats(s.now()), err
	}
	if _, err := s.Sweep(ctx); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("session sweep")
	}
	return st, nil
}

func (s *AnalyticsService) counters(ctx context.Context) (Stats, error) {
	if s.Cache != nil {
		if v, ok := s.Cache.Get(statsCacheKey); ok {
			return v.(Stats), nil
		}
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	st := Stats{LastUpdated: now}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		st.TotalVisitors, err = repo.CountDistinctVisitors(gctx, s.DB, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		st.TodayVisitors, err = repo.CountDistinctVisitors(gctx, s.DB, today)
		return err
	})
	g.Go(func() (err error) {
		st.ActiveUsers, err = repo.CountActiveSessions(gctx, s.DB, now.Add(-s.sessionTimeout()))
		return err
	})
	g.Go(func() (err error) {
		st.TotalTeammatesGenerated, err = repo.CountSuccessfulHistory(gctx, s.DB)
		return err
	})
	g.Go(func() (err error) {
		st.TotalImagesGenerated, err = repo.CountImagesByStatus(gctx, s.DB, domain.StatusCompleted)
		return err
	})
	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	if s.Cache != nil {
		s.Cache.SetDefault(statsCacheKey, st)
	}
	return st, nil
}

// Sweep marks sessions idle longer than SessionTimeout inactive.
func (s *AnalyticsService) Sweep(ctx context.Context) (int64, error) {
	n, err := repo.DeactivateSessionsBefore(ctx, s.DB, s.now().Add(-s.sessionTimeout()))
	if n > 0 {
		observability.SessionsSwept.Add(float64(n))
	}
	return n, err
}

// Apply runs a named maintenance action.
func (s *AnalyticsService) Apply(ctx context.Context, action string) error {
	if action != ActionCleanup {
		return ErrUnknownAction
	}
	age := s.CleanupAge
	if age <= 0 {
		age = DefaultCleanupAge
	}
	n, err := repo.DeactivateSessionsBefore(ctx, s.DB, s.now().Add(-age))
	if err != nil {
		return err
	}
	if s.Cache != nil {
		s.Cache.Delete(statsCacheKey)
	}
	zerolog.Ctx(ctx).Info().Int64("sessions", n).Msg("analytics cleanup")
	return nil
}

// StartSweeper runs Sweep every interval until ctx is done. Each tick also
// drops expired idempotency records. A non-positive interval does nothing.
func (s *AnalyticsService) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	lg := zerolog.Ctx(ctx)
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n, err := s.Sweep(ctx); err != nil {
					lg.Error().Err(err).Msg("session sweep")
				} else if n > 0 {
					lg.Debug().Int64("sessions", n).Msg("sessions marked inactive")
				}
				if _, err := repo.PurgeExpiredIdempotency(ctx, s.DB, s.now()); err != nil {
					lg.Error().Err(err).Msg("purge idempotency keys")
				}
			}
		}
	}()
}
