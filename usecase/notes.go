package usecase

import (
	"context"
	"fmt"
	"strings"

	"noteapi/apperr"
	"noteapi/dto"
	"noteapi/model"
	"noteapi/repository"
)

type NoteService struct {
	NotesRepo *repository.NotesRepo
}

// List returns one page of notes plus the total count for the applied
// filter. Page and page size are clamped to sane values; a present search
// term supersedes the structured filters.
func (svc *NoteService) List(ctx context.Context, query dto.ListNotesQuery) ([]*model.Note, int64, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 {
		query.Limit = 10
	}

	opts := repository.FindOptions{
		Search:    strings.TrimSpace(query.Search),
		Category:  query.Category,
		Priority:  query.Priority,
		Archived:  query.Archived,
		Favorites: query.Favorites,
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Page:      query.Page,
		PageSize:  query.Limit,
	}
	return svc.NotesRepo.FindNotes(ctx, opts)
}

func (svc *NoteService) Get(ctx context.Context, id string) (*model.Note, error) {
	return svc.NotesRepo.FindNoteByID(ctx, id)
}

// Search runs the ranked full-text search without pagination.
func (svc *NoteService) Search(ctx context.Context, query string) ([]*model.Note, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", apperr.ErrValidation)
	}
	return svc.NotesRepo.SearchNotes(ctx, query)
}

// ByCategory returns non-archived notes in one category, newest first,
// capped at 50 by the repository.
func (svc *NoteService) ByCategory(ctx context.Context, category string) ([]*model.Note, error) {
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("%w: category must be one of: %s",
			apperr.ErrValidation, strings.Join(model.Categories, ", "))
	}
	return svc.NotesRepo.FindByCategory(ctx, category)
}

// Create builds a note from the request, applying trims, tag normalization
// and defaults, then delegates to the store.
func (svc *NoteService) Create(ctx context.Context, req dto.CreateNoteRequest) (*model.Note, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", apperr.ErrValidation)
	}
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", apperr.ErrValidation)
	}

	note := &model.Note{
		Title:    title,
		Content:  content,
		Tags:     normalizeTags(req.Tags),
		Category: req.Category,
		Priority: req.Priority,
		Color:    req.Color,
	}
	if note.Category == "" {
		note.Category = model.DefaultCategory
	}
	if note.Priority == "" {
		note.Priority = model.DefaultPriority
	}
	if note.Color == "" {
		note.Color = model.DefaultColor
	}

	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// Update applies the present fields of a partial update onto the stored
// note and persists the merged result. Field values follow last-write-wins;
// there is no version check.
func (svc *NoteService) Update(ctx context.Context, id string, req dto.UpdateNoteRequest) (*model.Note, error) {
	note, err := svc.NotesRepo.FindNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}

	contentChanged := false
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", apperr.ErrValidation)
		}
		note.Title = title
	}
	if req.Content != nil {
		content := strings.TrimSpace(*req.Content)
		if content == "" {
			return nil, fmt.Errorf("%w: content cannot be empty", apperr.ErrValidation)
		}
		contentChanged = content != note.Content
		note.Content = content
	}
	if req.Tags != nil {
		note.Tags = normalizeTags(*req.Tags)
	}
	if req.Category != nil {
		note.Category = *req.Category
	}
	if req.Priority != nil {
		note.Priority = *req.Priority
	}
	if req.Color != nil {
		note.Color = *req.Color
	}
	if req.IsArchived != nil {
		note.IsArchived = *req.IsArchived
	}
	if req.IsFavorite != nil {
		note.IsFavorite = *req.IsFavorite
	}

	return svc.NotesRepo.UpdateNote(ctx, id, note, contentChanged)
}

// Delete removes a note and returns the deleted document.
func (svc *NoteService) Delete(ctx context.Context, id string) (*model.Note, error) {
	return svc.NotesRepo.DeleteNote(ctx, id)
}

// ToggleFavorite flips is_favorite and returns the updated note.
func (svc *NoteService) ToggleFavorite(ctx context.Context, id string) (*model.Note, error) {
	note, err := svc.NotesRepo.FindNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	note.IsFavorite = !note.IsFavorite
	return svc.NotesRepo.UpdateNote(ctx, id, note, false)
}

// ToggleArchive flips is_archived and returns the updated note. Archiving is
// independent from favoriting and never deletes.
func (svc *NoteService) ToggleArchive(ctx context.Context, id string) (*model.Note, error) {
	note, err := svc.NotesRepo.FindNoteByID(ctx, id)
	if err != nil {
		return nil, err
	}
	note.IsArchived = !note.IsArchived
	return svc.NotesRepo.UpdateNote(ctx, id, note, false)
}

// Stats aggregates the overview and per-category breakdown, computed fresh
// on every call.
func (svc *NoteService) Stats(ctx context.Context) (*model.NotesStats, error) {
	overview, err := svc.NotesRepo.NotesOverview(ctx)
	if err != nil {
		return nil, err
	}
	breakdown, err := svc.NotesRepo.CategoryBreakdown(ctx)
	if err != nil {
		return nil, err
	}
	return &model.NotesStats{
		Overview:          *overview,
		CategoryBreakdown: breakdown,
	}, nil
}

func normalizeTags(tags []string) []string {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			normalized = append(normalized, trimmed)
		}
	}
	return model.DedupeTags(normalized)
}
