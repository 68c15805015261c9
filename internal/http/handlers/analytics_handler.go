package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/http/middleware"
	"github.com/tbourn/teammate-generator/internal/services"
	"github.com/tbourn/teammate-generator/internal/utils"
)

const defaultVisitDays = 30

// TrackRequest is the body of POST /analytics/track.
type TrackRequest struct {
	VisitorID string `json:"visitorId" binding:"required,max=128" example:"v_8f2c"`
	SessionID string `json:"sessionId" binding:"required,max=128" example:"s_91ab"`
	Page      string `json:"page" binding:"required,max=255" example:"/"`
	// RFC 3339 client timestamp
	Timestamp string  `json:"timestamp" binding:"required" example:"2025-09-01T10:00:00Z"`
	UserAgent string  `json:"userAgent"`
	Referrer  *string `json:"referrer"`
}

// VisitListResponse lists recent visits.
type VisitListResponse struct {
	Success bool                     `json:"success" example:"true"`
	Data    []domain.VisitorTracking `json:"data"`
	Count   int                      `json:"count" example:"1"`
}

// StatsActionRequest is the body of POST /analytics/stats.
type StatsActionRequest struct {
	Action string `json:"action" example:"cleanup"`
}

// TrackVisit godoc
// @ID          trackVisit
// @Summary     Record a page visit
// @Description At most one visit per visitor per UTC day is stored; the session is always refreshed. Requests with DNT: 1 are acknowledged without writing.
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Param       body body     TrackRequest true "Visit"
// @Success     200  {object} MessageResponse
// @Failure     400  {object} ErrorResponse
// @Failure     500  {object} ErrorResponse
// @Router      /analytics/track [post]
func (h *Handlers) TrackVisit(c *gin.Context) {
	var in TrackRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidAs(c, err, "Invalid tracking data")
		return
	}
	ts, err := time.Parse(time.RFC3339, in.Timestamp)
	if err != nil {
		invalidAs(c, err, "Invalid tracking data")
		return
	}

	if c.GetHeader("DNT") == "1" {
		ok(c, http.StatusOK, MessageResponse{Success: true, Message: "Visit tracked successfully"})
		return
	}

	req := services.TrackRequest{
		VisitorID: in.VisitorID,
		SessionID: in.SessionID,
		Page:      in.Page,
		Timestamp: ts,
		UserAgent: in.UserAgent,
		IP:        clientIP(c),
	}
	if in.Referrer != nil {
		req.Referrer = *in.Referrer
	}
	if err := h.analytics.Track(c.Request.Context(), req); err != nil {
		failWith(c, http.StatusInternalServerError, ErrorResponse{
			Code:    ErrCodeInternal,
			Error:   "Failed to track visitor",
			Details: err.Error(),
		})
		return
	}
	ok(c, http.StatusOK, MessageResponse{Success: true, Message: "Visit tracked successfully"})
}

// RecentVisits godoc
// @ID          recentVisits
// @Summary     List recent visits
// @Tags        analytics
// @Produce     json
// @Param       days query    int false "Look-back window in days" default(30)
// @Success     200  {object} VisitListResponse
// @Failure     500  {object} ErrorResponse
// @Router      /analytics/track [get]
func (h *Handlers) RecentVisits(c *gin.Context) {
	days := utils.AtoiDefault(c.Query("days"), defaultVisitDays)
	if days < 0 {
		days = defaultVisitDays
	}
	rows, err := h.analytics.RecentVisits(c.Request.Context(), days)
	if err != nil {
		failWith(c, http.StatusInternalServerError, ErrorResponse{
			Code:    ErrCodeInternal,
			Error:   "Failed to fetch tracking data",
			Details: err.Error(),
		})
		return
	}
	if rows == nil {
		rows = []domain.VisitorTracking{}
	}
	ok(c, http.StatusOK, VisitListResponse{Success: true, Data: rows, Count: len(rows)})
}

// Stats godoc
// @ID          analyticsStats
// @Summary     Aggregate counters
// @Description Counts are read first, then sessions idle past the timeout are deactivated. When the database is unavailable a mock payload with an error field is returned with HTTP 200.
// @Tags        analytics
// @Produce     json
// @Success     200 {object} services.Stats
// @Router      /analytics/stats [get]
func (h *Handlers) Stats(c *gin.Context) {
	st, err := h.analytics.Stats(c.Request.Context())
	if err != nil {
		middleware.LoggerFrom(c).Error().Err(err).Msg("analytics stats, serving mock data")
	}
	ok(c, http.StatusOK, st)
}

// StatsAction godoc
// @ID          analyticsStatsAction
// @Summary     Run an analytics maintenance action
// @Description The only action is "cleanup": sessions idle for longer than the cleanup age are deactivated.
// @Tags        analytics
// @Accept      json
// @Produce     json
// @Param       body body     StatsActionRequest true "Action"
// @Success     200  {object} MessageResponse
// @Failure     400  {object} ErrorResponse
// @Failure     500  {object} ErrorResponse
// @Router      /analytics/stats [post]
func (h *Handlers) StatsAction(c *gin.Context) {
	var in StatsActionRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, err)
		return
	}
	err := h.analytics.Apply(c.Request.Context(), in.Action)
	switch {
	case errors.Is(err, services.ErrUnknownAction):
		fail(c, http.StatusBadRequest, ErrCodeUnknownAction, "Unknown action")
	case err != nil:
		failWith(c, http.StatusInternalServerError, ErrorResponse{
			Code:    ErrCodeInternal,
			Error:   "Failed to process analytics request",
			Details: err.Error(),
		})
	default:
		ok(c, http.StatusOK, MessageResponse{Success: true, Message: "Analytics cleanup completed"})
	}
}

// clientIP takes the first X-Forwarded-For hop, then X-Real-IP, else
// "unknown". The headers are trusted as sent.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		if first := strings.TrimSpace(strings.Split(xff, ",")[0]); first != "" {
			return first
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return "unknown"
}
