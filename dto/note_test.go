package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestColorValidation(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	if err := v.RegisterValidation("notecolor", NoteColor); err != nil {
		t.Fatalf("RegisterValidation: %v", err)
	}

	tests := []struct {
		color string
		valid bool
	}{
		{color: "#fff", valid: true},
		{color: "#FFFFFF", valid: true},
		{color: "#1a2B3c", valid: true},
		{color: "", valid: true}, // omitempty
		{color: "#1234", valid: false},
		{color: "#12345678", valid: false},
		{color: "ffffff", valid: false},
		{color: "#ggg", valid: false},
		{color: "bright red", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			req := CreateNoteRequest{Title: "t", Content: "c", Color: tt.color}
			err := v.Struct(req)
			if tt.valid && err != nil {
				t.Errorf("color %q rejected: %v", tt.color, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("color %q accepted", tt.color)
			}
		})
	}
}

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name     string
		page     int
		limit    int
		returned int
		total    int64
		want     Pagination
	}{
		{
			name: "FirstPageOfMany", page: 1, limit: 10, returned: 10, total: 25,
			want: Pagination{CurrentPage: 1, TotalPages: 3, TotalNotes: 25, HasNextPage: true, HasPrevPage: false},
		},
		{
			name: "MiddlePage", page: 2, limit: 10, returned: 10, total: 25,
			want: Pagination{CurrentPage: 2, TotalPages: 3, TotalNotes: 25, HasNextPage: true, HasPrevPage: true},
		},
		{
			name: "LastPartialPage", page: 3, limit: 10, returned: 5, total: 25,
			want: Pagination{CurrentPage: 3, TotalPages: 3, TotalNotes: 25, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "ExactFit", page: 2, limit: 5, returned: 5, total: 10,
			want: Pagination{CurrentPage: 2, TotalPages: 2, TotalNotes: 10, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "EmptyCollection", page: 1, limit: 10, returned: 0, total: 0,
			want: Pagination{CurrentPage: 1, TotalPages: 0, TotalNotes: 0, HasNextPage: false, HasPrevPage: false},
		},
		{
			name: "PageBeyondEnd", page: 5, limit: 10, returned: 0, total: 25,
			want: Pagination{CurrentPage: 5, TotalPages: 3, TotalNotes: 25, HasNextPage: false, HasPrevPage: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewPagination(tt.page, tt.limit, tt.returned, tt.total)
			if got != tt.want {
				t.Errorf("NewPagination(%d, %d, %d, %d) = %+v, want %+v",
					tt.page, tt.limit, tt.returned, tt.total, got, tt.want)
			}
		})
	}
}

// Summing page sizes across all pages must equal the total, and
// hasNextPage must flip only on the last page.
func TestPaginationInvariantAcrossPages(t *testing.T) {
	const total, limit = 23, 5

	counted := 0
	for page := 1; ; page++ {
		remaining := total - (page-1)*limit
		returned := limit
		if remaining < limit {
			returned = remaining
		}
		counted += returned

		meta := NewPagination(page, limit, returned, total)
		wantNext := (page-1)*limit+returned < total
		if meta.HasNextPage != wantNext {
			t.Fatalf("page %d: HasNextPage = %v, want %v", page, meta.HasNextPage, wantNext)
		}
		if !meta.HasNextPage {
			break
		}
	}

	if counted != total {
		t.Errorf("summed page sizes = %d, want %d", counted, total)
	}
}
