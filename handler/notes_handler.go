package handler

import (
	"errors"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"noteapi/apperr"
	"noteapi/dto"
	"noteapi/middleware"
	"noteapi/usecase"
	"noteapi/utils"
)

type NotesHandler struct {
	Service *usecase.NoteService
}

func NewNotesHandler(service *usecase.NoteService) *NotesHandler {
	return &NotesHandler{Service: service}
}

// List handles GET /api/notes with pagination, search and filtering.
func (h *NotesHandler) List(c *gin.Context) {
	var query dto.ListNotesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequest(c, "Invalid query parameters")
		return
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 10
	}

	notes, total, err := h.Service.List(c.Request.Context(), query)
	if err != nil {
		h.respondError(c, err, "Error fetching notes")
		return
	}

	utils.Success(c, gin.H{
		"notes":      notes,
		"pagination": dto.NewPagination(query.Page, query.Limit, len(notes), total),
	})
}

// Get handles GET /api/notes/:id.
func (h *NotesHandler) Get(c *gin.Context) {
	note, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Error fetching note")
		return
	}
	utils.Success(c, gin.H{"note": note})
}

// Search handles GET /api/notes/search?q= with ranked full-text results.
func (h *NotesHandler) Search(c *gin.Context) {
	notes, err := h.Service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.respondError(c, err, "Error searching notes")
		return
	}
	utils.Success(c, gin.H{"notes": notes})
}

// ByCategory handles GET /api/notes/category/:category.
func (h *NotesHandler) ByCategory(c *gin.Context) {
	notes, err := h.Service.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		h.respondError(c, err, "Error fetching notes")
		return
	}
	utils.Success(c, gin.H{"notes": notes})
}

// Create handles POST /api/notes.
func (h *NotesHandler) Create(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(c, utils.ValidationMessages(err))
		return
	}

	note, err := h.Service.Create(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err, "Error creating note")
		return
	}

	middleware.TrackNoteOperation("create")
	utils.Created(c, "Note created successfully", gin.H{"note": note})
}

// Update handles PUT /api/notes/:id with a partial payload.
func (h *NotesHandler) Update(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ValidationFailed(c, utils.ValidationMessages(err))
		return
	}

	note, err := h.Service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.respondError(c, err, "Error updating note")
		return
	}

	middleware.TrackNoteOperation("update")
	utils.SuccessMessage(c, "Note updated successfully", gin.H{"note": note})
}

// Delete handles DELETE /api/notes/:id and returns the deleted note.
func (h *NotesHandler) Delete(c *gin.Context) {
	note, err := h.Service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Error deleting note")
		return
	}

	middleware.TrackNoteOperation("delete")
	utils.SuccessMessage(c, "Note deleted successfully", gin.H{"deletedNote": note})
}

// ToggleFavorite handles PATCH /api/notes/:id/favorite.
func (h *NotesHandler) ToggleFavorite(c *gin.Context) {
	note, err := h.Service.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Error toggling favorite")
		return
	}

	message := "Note removed from favorites"
	if note.IsFavorite {
		message = "Note added to favorites"
	}
	middleware.TrackNoteOperation("favorite")
	utils.SuccessMessage(c, message, gin.H{"note": note})
}

// ToggleArchive handles PATCH /api/notes/:id/archive.
func (h *NotesHandler) ToggleArchive(c *gin.Context) {
	note, err := h.Service.ToggleArchive(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Error toggling archive")
		return
	}

	message := "Note unarchived successfully"
	if note.IsArchived {
		message = "Note archived successfully"
	}
	middleware.TrackNoteOperation("archive")
	utils.SuccessMessage(c, message, gin.H{"note": note})
}

// Stats handles GET /api/notes/stats.
func (h *NotesHandler) Stats(c *gin.Context) {
	stats, err := h.Service.Stats(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Error fetching statistics")
		return
	}
	utils.Success(c, stats)
}

func (h *NotesHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, apperr.ErrInvalidID):
		utils.BadRequest(c, "Invalid note ID")
	case errors.Is(err, apperr.ErrNotFound):
		utils.NotFound(c, "Note not found")
	case errors.Is(err, apperr.ErrValidation):
		utils.ValidationFailed(c, []string{validationDetail(err)})
	default:
		log.Printf("%s: %v", fallback, err)
		utils.InternalError(c, fallback, err)
	}
}

// validationDetail strips the generic validation prefix, leaving the
// field-specific message.
func validationDetail(err error) string {
	message := err.Error()
	if cut, ok := strings.CutPrefix(message, "validation failed: "); ok {
		return cut
	}
	return message
}
