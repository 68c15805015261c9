package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/teammate-generator/internal/domain"
	"github.com/tbourn/teammate-generator/internal/prompt"
	"github.com/tbourn/teammate-generator/internal/providers"
	"github.com/tbourn/teammate-generator/internal/repo"
	"github.com/tbourn/teammate-generator/internal/services"
)

// Default list sizes.
const (
	defaultImageLimit   = 10
	defaultHistoryLimit = 20
	maxListLimit        = 100
)

// GenerateImageRequest is the body of POST /images/generate.
type GenerateImageRequest struct {
	Prompt      string `json:"prompt" binding:"required,max=1000" example:"friendly backend engineer who loves hiking"`
	Style       string `json:"style" binding:"omitempty,oneof=realistic artistic professional casual" example:"realistic"`
	AspectRatio string `json:"aspectRatio" binding:"omitempty,oneof=1:1 16:10 10:16 16:9 9:16 3:2 2:3" example:"1:1"`
	Category    string `json:"category" example:"engineering"`
	// Provider name; empty picks the configured default.
	Provider   string `json:"provider" example:"flux"`
	UserID     string `json:"userId"`
	TeammateID string `json:"teammateId"`
	Seed       *int64 `json:"seed" binding:"omitempty,min=0,max=2147483647"`
}

// GenerateImageResponse reports a provider call. Success mirrors the
// result status; a failed generation is still HTTP 200.
type GenerateImageResponse struct {
	Success bool             `json:"success"`
	Data    providers.Result `json:"data"`
	Message string           `json:"message" example:"Image generated successfully"`
}

// HumanFaceRequest is the body of POST /images/human-face.
type HumanFaceRequest struct {
	UserID       string `json:"userId"`
	Age          string `json:"age" example:"30s"`
	Gender       string `json:"gender" example:"woman"`
	Ethnicity    string `json:"ethnicity"`
	Expression   string `json:"expression"`
	Profession   string `json:"profession" example:"designer"`
	Style        string `json:"style" binding:"omitempty,oneof=headshot portrait environmental" example:"headshot"`
	Lighting     string `json:"lighting" binding:"omitempty,oneof=natural studio dramatic golden-hour" example:"natural"`
	CustomPrompt string `json:"customPrompt" binding:"max=1000"`
}

// HumanFaceResponse adds the prompt that was sent and the resolved face
// parameters.
type HumanFaceResponse struct {
	Success         bool                   `json:"success"`
	Data            providers.Result       `json:"data"`
	GeneratedPrompt string                 `json:"generatedPrompt"`
	Parameters      prompt.HumanFaceParams `json:"parameters"`
	Message         string                 `json:"message" example:"Human face generated successfully"`
}

// DiversePartnerRequest is the body of POST /images/diverse-partner.
type DiversePartnerRequest struct {
	Category    string `json:"category" example:"business"`
	Description string `json:"description" binding:"max=1000" example:"professional and approachable"`
	Style       string `json:"style" binding:"omitempty,oneof=realistic artistic professional casual" example:"realistic"`
	Gender      string `json:"gender" binding:"omitempty,oneof=male female non-binary any" example:"any"`
	UserID      string `json:"userId"`
	TeammateID  string `json:"teammateId"`
}

// DiversePartnerResponse adds the provider and the drawn characteristics.
type DiversePartnerResponse struct {
	Success         bool                   `json:"success"`
	Data            providers.Result       `json:"data"`
	Provider        string                 `json:"provider" example:"imagen"`
	Characteristics prompt.Characteristics `json:"characteristics"`
	Message         string                 `json:"message"`
}

// ImageListResponse lists stored images.
type ImageListResponse struct {
	Success bool                    `json:"success" example:"true"`
	Data    []domain.GeneratedImage `json:"data"`
}

// HistoryListResponse lists generation attempts.
type HistoryListResponse struct {
	Success bool                       `json:"success" example:"true"`
	Data    []domain.GenerationHistory `json:"data"`
}

// GenerateImage godoc
// @ID          generateImage
// @Summary     Generate an image
// @Description Composes a prompt from the request and calls the selected provider. A failed generation is reported with HTTP 200 and success=false.
// @Tags        images
// @Accept      json
// @Produce     json
// @Param       body body     GenerateImageRequest true "Generation request"
// @Success     200  {object} GenerateImageResponse
// @Failure     400  {object} ErrorResponse
// @Failure     429  {object} ErrorResponse
// @Failure     500  {object} ErrorResponse
// @Failure     503  {object} ErrorResponse
// @Router      /images/generate [post]
func (h *Handlers) GenerateImage(c *gin.Context) {
	var in GenerateImageRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, err)
		return
	}
	style := styleOrDefault(in.Style)
	if in.AspectRatio == "" {
		in.AspectRatio = "1:1"
	}

	res, err := h.images.Generate(c.Request.Context(), services.GenerateRequest{
		Prompt:      in.Prompt,
		Style:       style,
		AspectRatio: in.AspectRatio,
		Category:    in.Category,
		Provider:    in.Provider,
		UserID:      userID(c, in.UserID),
		TeammateID:  in.TeammateID,
		Seed:        in.Seed,
	})
	if err != nil {
		serviceFail(c, err, "Failed to generate image", in.Provider)
		return
	}

	msg := "Image generated successfully"
	if !res.Completed() {
		msg = "Image generation failed"
	}
	ok(c, http.StatusOK, GenerateImageResponse{Success: res.Completed(), Data: res, Message: msg})
}

// ListImages godoc
// @ID          listImages
// @Summary     List generated images
// @Tags        images
// @Produce     json
// @Param       userId     query    string false "Owner"
// @Param       teammateId query    string false "Teammate"
// @Param       provider   query    string false "Provider"
// @Param       limit      query    int    false "Max rows" default(10)
// @Success     200        {object} ImageListResponse
// @Failure     500        {object} ErrorResponse
// @Router      /images/generate [get]
func (h *Handlers) ListImages(c *gin.Context) {
	h.listImages(c, repo.ImageFilter{
		UserID:     userID(c, c.Query("userId")),
		TeammateID: c.Query("teammateId"),
		Provider:   c.Query("provider"),
	}, "Failed to fetch images")
}

// HumanFace godoc
// @ID          generateHumanFace
// @Summary     Generate a realistic human face
// @Description Always uses Ideogram at 3:2 with the realistic style. customPrompt replaces the built prompt.
// @Tags        images
// @Accept      json
// @Produce     json
// @Param       body body     HumanFaceRequest true "Face parameters"
// @Success     200  {object} HumanFaceResponse
// @Failure     400  {object} ErrorResponse
// @Failure     500  {object} ErrorResponse
// @Failure     503  {object} ErrorResponse
// @Router      /images/human-face [post]
func (h *Handlers) HumanFace(c *gin.Context) {
	var in HumanFaceRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, err)
		return
	}

	out, err := h.images.HumanFace(c.Request.Context(), services.HumanFaceRequest{
		Face: prompt.HumanFaceParams{
			Age:        in.Age,
			Gender:     in.Gender,
			Ethnicity:  in.Ethnicity,
			Expression: in.Expression,
			Profession: in.Profession,
			Style:      in.Style,
			Lighting:   in.Lighting,
		},
		CustomPrompt: in.CustomPrompt,
		UserID:       userID(c, in.UserID),
	})
	if err != nil {
		serviceFail(c, err, "Failed to generate human face", string(providers.Ideogram))
		return
	}

	msg := "Human face generated successfully"
	if !out.Result.Completed() {
		msg = "Face generation failed"
	}
	ok(c, http.StatusOK, HumanFaceResponse{
		Success:         out.Result.Completed(),
		Data:            out.Result,
		GeneratedPrompt: out.Result.Prompt,
		Parameters:      out.Face,
		Message:         msg,
	})
}

// ListHumanFaces godoc
// @ID          listHumanFaces
// @Summary     List generated human faces
// @Tags        images
// @Produce     json
// @Param       userId query    string false "Owner"
// @Param       limit  query    int    false "Max rows" default(10)
// @Success     200    {object} ImageListResponse
// @Failure     500    {object} ErrorResponse
// @Router      /images/human-face [get]
func (h *Handlers) ListHumanFaces(c *gin.Context) {
	h.listImages(c, repo.ImageFilter{
		UserID: userID(c, c.Query("userId")),
		Type:   services.TypeHumanFace,
	}, "Failed to fetch human face images")
}

// DiversePartner godoc
// @ID          generateDiversePartner
// @Summary     Generate a diverse AI partner portrait
// @Description Draws random visual characteristics and renders them with Imagen.
// @Tags        images
// @Accept      json
// @Produce     json
// @Param       body body     DiversePartnerRequest true "Partner request"
// @Success     200  {object} DiversePartnerResponse
// @Failure     400  {object} ErrorResponse
// @Failure     500  {object} ErrorResponse
// @Failure     503  {object} ErrorResponse
// @Router      /images/diverse-partner [post]
func (h *Handlers) DiversePartner(c *gin.Context) {
	var in DiversePartnerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		invalid(c, err)
		return
	}
	if in.Category == "" {
		in.Category = "business"
	}
	if in.Description == "" {
		in.Description = "professional and approachable"
	}
	if in.Gender == "" {
		in.Gender = "any"
	}
	style := styleOrDefault(in.Style)

	out, err := h.images.DiversePartner(c.Request.Context(), services.DiversePartnerRequest{
		Category:    in.Category,
		Description: in.Description,
		Style:       style,
		Gender:      in.Gender,
		UserID:      userID(c, in.UserID),
		TeammateID:  in.TeammateID,
	})
	if err != nil {
		serviceFail(c, err, "Failed to generate diverse AI partner with Imagen", string(providers.Imagen))
		return
	}

	msg := "Diverse AI partner generated successfully using Imagen"
	if !out.Result.Completed() {
		msg = "AI partner generation failed with Imagen"
	}
	ok(c, http.StatusOK, DiversePartnerResponse{
		Success:         out.Result.Completed(),
		Data:            out.Result,
		Provider:        string(providers.Imagen),
		Characteristics: out.Characteristics,
		Message:         msg,
	})
}

// ListDiversePartners godoc
// @ID          listDiversePartners
// @Summary     List Imagen-generated partners
// @Tags        images
// @Produce     json
// @Param       userId query    string false "Owner"
// @Param       limit  query    int    false "Max rows" default(10)
// @Success     200    {object} ImageListResponse
// @Failure     500    {object} ErrorResponse
// @Router      /images/diverse-partner [get]
func (h *Handlers) ListDiversePartners(c *gin.Context) {
	h.listImages(c, repo.ImageFilter{
		UserID:   userID(c, c.Query("userId")),
		Provider: string(providers.Imagen),
	}, "Failed to fetch diverse AI partners")
}

// ImageHistory godoc
// @ID          imageHistory
// @Summary     List a user's generation attempts
// @Description Includes failed attempts. userId (or X-User-ID) is required.
// @Tags        images
// @Produce     json
// @Param       userId query    string true  "Owner"
// @Param       limit  query    int    false "Max rows" default(20)
// @Success     200    {object} HistoryListResponse
// @Failure     400    {object} ErrorResponse
// @Failure     500    {object} ErrorResponse
// @Router      /images/history [get]
func (h *Handlers) ImageHistory(c *gin.Context) {
	uid := userID(c, c.Query("userId"))
	if uid == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "userId is required")
		return
	}
	rows, err := h.images.History(c.Request.Context(), uid, queryLimit(c, defaultHistoryLimit, maxListLimit))
	if err != nil {
		failWith(c, http.StatusInternalServerError, ErrorResponse{
			Code:    ErrCodeInternal,
			Error:   "Failed to fetch generation history",
			Details: err.Error(),
		})
		return
	}
	if rows == nil {
		rows = []domain.GenerationHistory{}
	}
	ok(c, http.StatusOK, HistoryListResponse{Success: true, Data: rows})
}

func (h *Handlers) listImages(c *gin.Context, f repo.ImageFilter, failMsg string) {
	f.Limit = queryLimit(c, defaultImageLimit, maxListLimit)
	rows, err := h.images.ListImages(c.Request.Context(), f)
	if err != nil {
		failWith(c, http.StatusInternalServerError, ErrorResponse{
			Code:    ErrCodeInternal,
			Error:   failMsg,
			Details: err.Error(),
		})
		return
	}
	if rows == nil {
		rows = []domain.GeneratedImage{}
	}
	ok(c, http.StatusOK, ImageListResponse{Success: true, Data: rows})
}

// styleOrDefault maps an already validated style; empty means realistic.
func styleOrDefault(s string) prompt.Style {
	if st, ok := prompt.ParseStyle(s); ok {
		return st
	}
	return prompt.StyleRealistic
}
