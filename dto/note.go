package dto

// CreateNoteRequest carries the fields accepted on note creation. Bounds and
// enum membership are enforced by binding tags before the store is touched.
type CreateNoteRequest struct {
	Title    string   `json:"title" binding:"required,min=1,max=100"`
	Content  string   `json:"content" binding:"required,min=1,max=10000"`
	Tags     []string `json:"tags" binding:"omitempty,dive,max=30"`
	Category string   `json:"category" binding:"omitempty,oneof=Personal Work Study Ideas Tasks Other"`
	Priority string   `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Color    string   `json:"color" binding:"omitempty,notecolor"`
}

// UpdateNoteRequest is a partial update; every field is optional and only
// present fields are validated and applied.
type UpdateNoteRequest struct {
	Title      *string   `json:"title" binding:"omitempty,min=1,max=100"`
	Content    *string   `json:"content" binding:"omitempty,min=1,max=10000"`
	Tags       *[]string `json:"tags" binding:"omitempty,dive,max=30"`
	Category   *string   `json:"category" binding:"omitempty,oneof=Personal Work Study Ideas Tasks Other"`
	Priority   *string   `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Color      *string   `json:"color" binding:"omitempty,notecolor"`
	IsArchived *bool     `json:"isArchived"`
	IsFavorite *bool     `json:"isFavorite"`
}

// ListNotesQuery mirrors the query string of GET /api/notes.
type ListNotesQuery struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=10"`
	Search    string `form:"search"`
	Category  string `form:"category"`
	Priority  string `form:"priority"`
	SortBy    string `form:"sortBy,default=createdAt"`
	SortOrder string `form:"sortOrder,default=desc"`
	Archived  bool   `form:"archived"`
	Favorites bool   `form:"favorites"`
}

type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalNotes  int64 `json:"totalNotes"`
	HasNextPage bool  `json:"hasNextPage"`
	HasPrevPage bool  `json:"hasPrevPage"`
}

// NewPagination derives the page metadata returned alongside every listing.
// hasNextPage holds iff skip + returned < total.
func NewPagination(page, limit, returned int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	skip := (page - 1) * limit
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalNotes:  total,
		HasNextPage: int64(skip+returned) < total,
		HasPrevPage: page > 1,
	}
}
