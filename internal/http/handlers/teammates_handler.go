// Teammate endpoints:
//
//   - POST /teammates/generate  (create, optional portrait, idempotent)
//   - GET  /teammates/generate  (list, ETag support)
//
// Idempotency:
// If the client supplies an Idempotency-Key header and a teammate was already
// created with it on this route, the stored teammate is returned with
// `Idempotency-Replayed: true` and no provider is called.
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/http/middleware"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/repo"
	"github.com/tbourn/teammate-generator/internal/services"
)

const defaultTeammateLimit = 20

// CreateTeammateRequest is the body of POST /teammates/generate.
type CreateTeammateRequest struct {
	UserID    string   `json:"userId"`
	Name      string   `json:"name" binding:"required,min=1,max=100" example:"Ada"`
	Category  string   `json:"category" binding:"required,min=1" example:"engineering"`
	Bio       string   `json:"bio" binding:"required,min=1,max=500" example:"Backend engineer who loves distributed systems"`
	Skills    []string `json:"skills" example:"go,postgres"`
	Interests []string `json:"interests" example:"climbing"`
	Age       *int     `json:"age" binding:"omitempty,min=18,max=100" example:"31"`
	Location  string   `json:"location" binding:"max=100" example:"Lisbon"`
	// GenerateImage defaults to true when omitted.
	GenerateImage *bool  `json:"generateImage" example:"true"`
	ImageStyle    string `json:"imageStyle" binding:"omitempty,oneof=realistic artistic professional casual" example:"realistic"`
	ImagePrompt   string `json:"imagePrompt" binding:"max=1000"`
	Provider      string `json:"provider" example:"flux"`
}

// TeammateResponse wraps a created teammate. Image carries the portrait
// outcome when one was requested.
type TeammateResponse struct {
	Success bool              `json:"success" example:"true"`
	Data    *domain.Teammate  `json:"data"`
	Image   *providers.Result `json:"image,omitempty"`
	Message string            `json:"message" example:"Teammate generated successfully"`
}

// TeammateListResponse lists teammates.
type TeammateListResponse struct {
	Success bool              `json:"success" example:"true"`
	Data    []domain.Teammate `json:"data"`
}

// CreateTeammate godoc
// @ID          createTeammate
// @Summary     Create a teammate
// @Description Stores a teammate profile, generating a portrait first unless generateImage is false. A failed portrait still creates the teammate without an image.
// @Description Supports idempotency via the Idempotency-Key header (same key → same teammate).
// @Tags        teammates
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key header string                false "Idempotency key for safe retries" example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body            body   CreateTeammateRequest true  "Teammate profile"
// @Success     200  {object} TeammateResponse
// @Header      200  {string} Idempotency-Replayed "true when served from a previous request"
// @Failure     400  {object} ErrorResponse
// @Failure     429  {object} ErrorResponse
// @Failure     500  {object} ErrorResponse
// @Failure     503  {object} ErrorResponse
// @Router      /teammates/generate [post]
func (h *Handlers) CreateTeammate(c *gin.Context) {
	ctx := c.Request.Context()
	scope := middleware.IdempotencyScope(c)
	idemKey, hasKey := middleware.GetIdempotencyKey(c)

	// Replay path.
	if hasKey && middleware.IsReplay(c) {
		tm, err := h.teammates.Replay(ctx, scope, idemKey)
		switch {
		case err == nil:
			c.Header(middleware.HeaderIdempotencyReplayed, "true")
			ok(c, http.StatusOK, TeammateResponse{Success: true, Data: tm, Message: "Teammate generated successfully"})
			return
		case !errors.Is(err, repo.ErrNotFound):
			middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency replay")
		}
	}

	var in CreateTeammateRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, err)
		return
	}
	gen := true
	if in.GenerateImage != nil {
		gen = *in.GenerateImage
	}

	tm, res, err := h.teammates.Create(ctx, services.CreateTeammateRequest{
		UserID:        userID(c, in.UserID),
		Name:          in.Name,
		Category:      in.Category,
		Bio:           in.Bio,
		Skills:        nonNil(in.Skills),
		Interests:     nonNil(in.Interests),
		Age:           in.Age,
		Location:      in.Location,
		GenerateImage: gen,
		ImageStyle:    styleOrDefault(in.ImageStyle),
		ImagePrompt:   in.ImagePrompt,
		Provider:      in.Provider,
	})
	if err != nil {
		serviceFail(c, err, "Failed to store teammate data", in.Provider)
		return
	}

	// Store path, best effort.
	if hasKey {
		if err := h.teammates.Remember(ctx, scope, idemKey, tm.ID); err != nil {
			middleware.LoggerFrom(c).Warn().Err(err).Str("teammate_id", tm.ID).Msg("idempotency store")
		}
	}

	ok(c, http.StatusOK, TeammateResponse{
		Success: true,
		Data:    tm,
		Image:   res,
		Message: "Teammate generated successfully",
	})
}

// ListTeammates godoc
// @ID          listTeammates
// @Summary     List teammates
// @Description Newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        teammates
// @Produce     json
// @Param       If-None-Match header string false "Return 304 if ETag matches" example(W/\"abc123\")
// @Param       userId        query  string false "Owner"
// @Param       category      query  string false "Category"
// @Param       limit         query  int    false "Max rows" default(20)
// @Success     200  {object} TeammateListResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} ErrorResponse
// @Router      /teammates/generate [get]
func (h *Handlers) ListTeammates(c *gin.Context) {
	ctx := c.Request.Context()
	f := repo.TeammateFilter{
		UserID:   userID(c, c.Query("userId")),
		Category: c.Query("category"),
		Limit:    queryLimit(c, defaultTeammateLimit, maxListLimit),
	}

	// ETag pre-check (best effort).
	if count, maxTS, err := h.teammates.Stats(ctx, f); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"teammates:%s:%s:%d:%d:%d"`, f.UserID, f.Category, f.Limit, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	rows, err := h.teammates.List(ctx, f)
	if err != nil {
		failWith(c, http.StatusInternalServerError, ErrorResponse{
			Code:    ErrCodeInternal,
			Error:   "Failed to fetch teammates",
			Details: err.Error(),
		})
		return
	}
	if rows == nil {
		rows = []domain.Teammate{}
	}
	ok(c, http.StatusOK, TeammateListResponse{Success: true, Data: rows})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
