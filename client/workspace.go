package client

import (
	"context"
	"sort"
	"strings"

	"noteapi/dto"
	"noteapi/model"
)

// ViewMode is presentation-only; it carries no filtering semantics.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// Workspace holds the fetched note collection and applies local search and
// tag filters without touching the server. Mutations go through the API and
// adopt the server's returned representation; a failed call leaves local
// state unchanged.
type Workspace struct {
	api *Client

	notes        []model.Note
	searchTerm   string
	selectedTags map[string]struct{}
	viewMode     ViewMode
	allTags      []string
}

func NewWorkspace(api *Client) *Workspace {
	return &Workspace{
		api:          api,
		selectedTags: make(map[string]struct{}),
		viewMode:     ViewGrid,
	}
}

// Load replaces the collection with a fresh fetch.
func (w *Workspace) Load(ctx context.Context, opts ListOptions) error {
	notes, _, err := w.api.ListNotes(ctx, opts)
	if err != nil {
		return err
	}
	w.notes = notes
	w.refreshTags()
	return nil
}

func (w *Workspace) Notes() []model.Note {
	return w.notes
}

// AllTags is the sorted set of every tag present in the collection,
// recomputed on each collection change.
func (w *Workspace) AllTags() []string {
	return w.allTags
}

func (w *Workspace) SetSearchTerm(term string) {
	w.searchTerm = term
}

func (w *Workspace) SearchTerm() string {
	return w.searchTerm
}

// ToggleTag adds or removes a tag from the selected filter set.
func (w *Workspace) ToggleTag(tag string) {
	if _, ok := w.selectedTags[tag]; ok {
		delete(w.selectedTags, tag)
		return
	}
	w.selectedTags[tag] = struct{}{}
}

func (w *Workspace) SelectedTags() []string {
	tags := make([]string, 0, len(w.selectedTags))
	for tag := range w.selectedTags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func (w *Workspace) SetViewMode(mode ViewMode) {
	w.viewMode = mode
}

func (w *Workspace) ViewMode() ViewMode {
	return w.viewMode
}

// Filtered returns the notes passing the local filter: the search term must
// appear in title or content (case-insensitive), and when tags are selected
// the note must carry at least one of them.
func (w *Workspace) Filtered() []model.Note {
	filtered := make([]model.Note, 0, len(w.notes))
	for _, note := range w.notes {
		if w.matches(note) {
			filtered = append(filtered, note)
		}
	}
	return filtered
}

func (w *Workspace) matches(note model.Note) bool {
	if w.searchTerm != "" {
		term := strings.ToLower(w.searchTerm)
		if !strings.Contains(strings.ToLower(note.Title), term) &&
			!strings.Contains(strings.ToLower(note.Content), term) {
			return false
		}
	}
	if len(w.selectedTags) == 0 {
		return true
	}
	for _, tag := range note.Tags {
		if _, ok := w.selectedTags[tag]; ok {
			return true
		}
	}
	return false
}

// Create persists a new note and prepends the server's representation.
func (w *Workspace) Create(ctx context.Context, req dto.CreateNoteRequest) (model.Note, error) {
	note, err := w.api.CreateNote(ctx, req)
	if err != nil {
		return model.Note{}, err
	}
	w.notes = append([]model.Note{note}, w.notes...)
	w.refreshTags()
	return note, nil
}

// Update persists a partial update and replaces the local copy with the
// server's representation.
func (w *Workspace) Update(ctx context.Context, id string, req dto.UpdateNoteRequest) (model.Note, error) {
	note, err := w.api.UpdateNote(ctx, id, req)
	if err != nil {
		return model.Note{}, err
	}
	w.replace(note)
	return note, nil
}

// Delete removes the note locally only after the server confirms.
func (w *Workspace) Delete(ctx context.Context, id string) error {
	if _, err := w.api.DeleteNote(ctx, id); err != nil {
		return err
	}
	for i, note := range w.notes {
		if note.ID.Hex() == id {
			w.notes = append(w.notes[:i], w.notes[i+1:]...)
			break
		}
	}
	w.refreshTags()
	return nil
}

// ToggleFavorite flips the favorite flag through the API.
func (w *Workspace) ToggleFavorite(ctx context.Context, id string) (model.Note, error) {
	note, err := w.api.ToggleFavorite(ctx, id)
	if err != nil {
		return model.Note{}, err
	}
	w.replace(note)
	return note, nil
}

// ToggleArchive flips the archive flag through the API.
func (w *Workspace) ToggleArchive(ctx context.Context, id string) (model.Note, error) {
	note, err := w.api.ToggleArchive(ctx, id)
	if err != nil {
		return model.Note{}, err
	}
	w.replace(note)
	return note, nil
}

// Summarize runs the note through the summarizer and adopts the updated
// server representation.
func (w *Workspace) Summarize(ctx context.Context, id string, maxLength int) (model.Note, error) {
	note, err := w.api.SummarizeNote(ctx, id, maxLength)
	if err != nil {
		return model.Note{}, err
	}
	w.replace(note)
	return note, nil
}

func (w *Workspace) replace(updated model.Note) {
	for i, note := range w.notes {
		if note.ID == updated.ID {
			w.notes[i] = updated
			break
		}
	}
	w.refreshTags()
}

func (w *Workspace) refreshTags() {
	seen := make(map[string]struct{})
	tags := make([]string, 0)
	for _, note := range w.notes {
		for _, tag := range note.Tags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	w.allTags = tags
}
