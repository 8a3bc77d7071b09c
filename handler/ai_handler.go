package handler

import (
	"errors"
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"noteapi/apperr"
	"noteapi/dto"
	"noteapi/llm"
	"noteapi/middleware"
	"noteapi/usecase"
	"noteapi/utils"
)

type AIHandler struct {
	Service *usecase.AIService
}

func NewAIHandler(service *usecase.AIService) *AIHandler {
	return &AIHandler{Service: service}
}

// Summarize handles POST /api/ai/summarize.
func (h *AIHandler) Summarize(c *gin.Context) {
	var req dto.SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(c, utils.ValidationMessages(err))
		return
	}

	result, err := h.Service.SummarizeText(c.Request.Context(), req.Text, req.MaxLength)
	if err != nil {
		middleware.TrackAIRequest("summarize", "error")
		h.respondError(c, err, "Error generating summary")
		return
	}

	middleware.TrackAIRequest("summarize", "success")
	utils.Success(c, result)
}

// SummarizeNote handles POST /api/ai/summarize-note/:id. The body is
// optional; an absent body uses the default maximum length.
func (h *AIHandler) SummarizeNote(c *gin.Context) {
	var req dto.SummarizeNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		utils.ValidationFailed(c, utils.ValidationMessages(err))
		return
	}

	note, result, err := h.Service.SummarizeNote(c.Request.Context(), c.Param("id"), req.MaxLength)
	if err != nil {
		middleware.TrackAIRequest("summarize_note", "error")
		h.respondError(c, err, "Error summarizing note")
		return
	}

	middleware.TrackAIRequest("summarize_note", "success")
	utils.SuccessMessage(c, "Note summarized successfully", gin.H{
		"note":             note,
		"summary":          result.Summary,
		"originalLength":   result.OriginalLength,
		"summaryLength":    result.SummaryLength,
		"compressionRatio": result.CompressionRatio,
	})
}

// GenerateTags handles POST /api/ai/generate-tags.
func (h *AIHandler) GenerateTags(c *gin.Context) {
	var req dto.GenerateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(c, utils.ValidationMessages(err))
		return
	}

	tags, err := h.Service.GenerateTags(c.Request.Context(), req.Text, req.MaxTags)
	if err != nil {
		middleware.TrackAIRequest("generate_tags", "error")
		h.respondError(c, err, "Error generating tags")
		return
	}

	middleware.TrackAIRequest("generate_tags", "success")
	utils.Success(c, gin.H{"tags": tags})
}

// Stats handles GET /api/ai/stats, derived entirely from the store.
func (h *AIHandler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Error fetching AI statistics")
		return
	}
	utils.Success(c, stats)
}

func (h *AIHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperr.ErrInvalidID):
		utils.BadRequest(c, "Invalid note ID")
	case errors.Is(err, apperr.ErrNotFound):
		utils.NotFound(c, "Note not found")
	case errors.Is(err, apperr.ErrValidation):
		utils.BadRequest(c, validationDetail(err))
	case errors.Is(err, apperr.ErrNotConfigured):
		utils.InternalError(c, "OpenAI API key not configured", nil)
	case errors.Is(err, llm.ErrUnauthorized):
		utils.Unauthorized(c, "Invalid OpenAI API key")
	case errors.Is(err, llm.ErrRateLimited):
		utils.TooManyRequests(c, "OpenAI API rate limit exceeded. Please try again later.")
	case errors.Is(err, llm.ErrBadRequest):
		utils.BadRequest(c, "Invalid request to OpenAI API")
	default:
		log.Printf("%s: %v", fallback, err)
		utils.InternalError(c, fallback, err)
	}
}
