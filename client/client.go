// Package client is the Go counterpart of the browser client: an API client
// plus an in-memory workspace that mirrors the server-side note collection
// and applies local, non-persisted search and tag filters.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"noteapi/dto"
	"noteapi/model"
)

// Client talks to the notes API. The 30 second timeout accommodates the
// latency of AI endpoints.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-success envelope returned by the server.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []string
}

func (e *APIError) Error() string {
	if len(e.Errors) > 0 {
		return fmt.Sprintf("api error %d: %s (%s)", e.StatusCode, e.Message, strings.Join(e.Errors, "; "))
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Errors  []string        `json:"errors"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Status != "success" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Errors:     env.Errors,
		}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

type notePayload struct {
	Note model.Note `json:"note"`
}

type listPayload struct {
	Notes      []model.Note   `json:"notes"`
	Pagination dto.Pagination `json:"pagination"`
}

// ListOptions filters the server-side listing. The zero value fetches the
// first page with server defaults.
type ListOptions struct {
	Page      int
	Limit     int
	Search    string
	Category  string
	Priority  string
	SortBy    string
	SortOrder string
	Archived  bool
	Favorites bool
}

func (o ListOptions) query() string {
	values := url.Values{}
	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Search != "" {
		values.Set("search", o.Search)
	}
	if o.Category != "" {
		values.Set("category", o.Category)
	}
	if o.Priority != "" {
		values.Set("priority", o.Priority)
	}
	if o.SortBy != "" {
		values.Set("sortBy", o.SortBy)
	}
	if o.SortOrder != "" {
		values.Set("sortOrder", o.SortOrder)
	}
	if o.Archived {
		values.Set("archived", "true")
	}
	if o.Favorites {
		values.Set("favorites", "true")
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func (c *Client) ListNotes(ctx context.Context, opts ListOptions) ([]model.Note, dto.Pagination, error) {
	var payload listPayload
	if err := c.do(ctx, http.MethodGet, "/api/notes"+opts.query(), nil, &payload); err != nil {
		return nil, dto.Pagination{}, err
	}
	return payload.Notes, payload.Pagination, nil
}

func (c *Client) GetNote(ctx context.Context, id string) (model.Note, error) {
	var payload notePayload
	err := c.do(ctx, http.MethodGet, "/api/notes/"+id, nil, &payload)
	return payload.Note, err
}

func (c *Client) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (model.Note, error) {
	var payload notePayload
	err := c.do(ctx, http.MethodPost, "/api/notes", req, &payload)
	return payload.Note, err
}

func (c *Client) UpdateNote(ctx context.Context, id string, req dto.UpdateNoteRequest) (model.Note, error) {
	var payload notePayload
	err := c.do(ctx, http.MethodPut, "/api/notes/"+id, req, &payload)
	return payload.Note, err
}

func (c *Client) DeleteNote(ctx context.Context, id string) (model.Note, error) {
	var payload struct {
		DeletedNote model.Note `json:"deletedNote"`
	}
	err := c.do(ctx, http.MethodDelete, "/api/notes/"+id, nil, &payload)
	return payload.DeletedNote, err
}

func (c *Client) ToggleFavorite(ctx context.Context, id string) (model.Note, error) {
	var payload notePayload
	err := c.do(ctx, http.MethodPatch, "/api/notes/"+id+"/favorite", nil, &payload)
	return payload.Note, err
}

func (c *Client) ToggleArchive(ctx context.Context, id string) (model.Note, error) {
	var payload notePayload
	err := c.do(ctx, http.MethodPatch, "/api/notes/"+id+"/archive", nil, &payload)
	return payload.Note, err
}

func (c *Client) NotesStats(ctx context.Context) (model.NotesStats, error) {
	var stats model.NotesStats
	err := c.do(ctx, http.MethodGet, "/api/notes/stats", nil, &stats)
	return stats, err
}

// SummarizeNote asks the server to summarize a stored note and returns the
// updated note. maxLength of 0 uses the server default.
func (c *Client) SummarizeNote(ctx context.Context, id string, maxLength int) (model.Note, error) {
	req := dto.SummarizeNoteRequest{MaxLength: maxLength}
	var payload notePayload
	err := c.do(ctx, http.MethodPost, "/api/ai/summarize-note/"+id, req, &payload)
	return payload.Note, err
}

func (c *Client) SummarizeText(ctx context.Context, text string, maxLength int) (string, error) {
	req := dto.SummarizeRequest{Text: text, MaxLength: maxLength}
	var payload struct {
		Summary string `json:"summary"`
	}
	err := c.do(ctx, http.MethodPost, "/api/ai/summarize", req, &payload)
	return payload.Summary, err
}

func (c *Client) GenerateTags(ctx context.Context, text string, maxTags int) ([]string, error) {
	req := dto.GenerateTagsRequest{Text: text, MaxTags: maxTags}
	var payload struct {
		Tags []string `json:"tags"`
	}
	err := c.do(ctx, http.MethodPost, "/api/ai/generate-tags", req, &payload)
	return payload.Tags, err
}

func (c *Client) AIStats(ctx context.Context) (model.AIStats, error) {
	var stats model.AIStats
	err := c.do(ctx, http.MethodGet, "/api/ai/stats", nil, &stats)
	return stats, err
}
