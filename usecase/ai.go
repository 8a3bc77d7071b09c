package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"noteapi/apperr"
	"noteapi/llm"
	"noteapi/model"
)

const (
	minSummarizeChars = 50
	minTagTextChars   = 10
	defaultMaxLength  = 150
	defaultMaxTags    = 5
	recentSummaries   = 5
)

// NoteSummaryStore is the slice of the notes repository the summarization
// gateway needs.
type NoteSummaryStore interface {
	FindNoteByID(ctx context.Context, id string) (*model.Note, error)
	SetSummary(ctx context.Context, id string, summary string) (*model.Note, error)
	CountNotes(ctx context.Context) (int64, error)
	CountSummarized(ctx context.Context) (int64, error)
	RecentlySummarized(ctx context.Context, limit int) ([]model.SummaryRef, error)
}

// AIService bridges note content to the external completion capability.
// Provider is nil when no API key is configured; every call then fails with
// a configuration error instead of a business error.
type AIService struct {
	Notes    NoteSummaryStore
	Provider llm.Provider
}

// SummaryResult reports a generated summary plus its length metrics.
// CompressionRatio is the percentage of characters removed, one decimal.
type SummaryResult struct {
	Summary          string `json:"summary"`
	OriginalLength   int    `json:"originalLength"`
	SummaryLength    int    `json:"summaryLength"`
	CompressionRatio string `json:"compressionRatio"`
}

func summarySystemPrompt(maxLength int) string {
	return fmt.Sprintf("You are a helpful assistant that creates concise, informative summaries. "+
		"Summarize the given text in %d characters or less. "+
		"Focus on the key points and main ideas. "+
		"Make it clear and well-structured.", maxLength)
}

func tagsSystemPrompt(maxTags int) string {
	return fmt.Sprintf("You are a helpful assistant that generates relevant tags for text content. "+
		"Generate up to %d relevant, concise tags (1-2 words each) for the given text. "+
		"Return only the tags separated by commas, nothing else. "+
		"Focus on key topics, themes, and categories.", maxTags)
}

// SummarizeText summarizes arbitrary text. Input below 50 characters is
// rejected before the provider is called.
func (svc *AIService) SummarizeText(ctx context.Context, text string, maxLength int) (*SummaryResult, error) {
	if svc.Provider == nil {
		return nil, apperr.ErrNotConfigured
	}
	if utf8.RuneCountInString(text) < minSummarizeChars {
		return nil, fmt.Errorf("%w: text is too short to summarize, minimum %d characters required",
			apperr.ErrValidation, minSummarizeChars)
	}
	if maxLength == 0 {
		maxLength = defaultMaxLength
	}

	summary, err := svc.Provider.Complete(ctx,
		summarySystemPrompt(maxLength),
		"Please summarize this text: "+text,
		llm.WithMaxTokens(maxLength/2), // roughly 2 characters per token
		llm.WithTemperature(0.3),
	)
	if err != nil {
		return nil, err
	}

	return newSummaryResult(text, summary), nil
}

// SummarizeNote summarizes a stored note and persists the result onto it,
// returning both the updated note and the length metrics.
func (svc *AIService) SummarizeNote(ctx context.Context, id string, maxLength int) (*model.Note, *SummaryResult, error) {
	note, err := svc.Notes.FindNoteByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if svc.Provider == nil {
		return nil, nil, apperr.ErrNotConfigured
	}
	if utf8.RuneCountInString(note.Content) < minSummarizeChars {
		return nil, nil, fmt.Errorf("%w: note content is too short to summarize, minimum %d characters required",
			apperr.ErrValidation, minSummarizeChars)
	}
	if maxLength == 0 {
		maxLength = defaultMaxLength
	}

	summary, err := svc.Provider.Complete(ctx,
		summarySystemPrompt(maxLength),
		fmt.Sprintf("Please summarize this note titled %q: %s", note.Title, note.Content),
		llm.WithMaxTokens(maxLength/2),
		llm.WithTemperature(0.3),
	)
	if err != nil {
		return nil, nil, err
	}
	summary = model.TruncateSummary(summary)

	updated, err := svc.Notes.SetSummary(ctx, id, summary)
	if err != nil {
		return nil, nil, err
	}
	return updated, newSummaryResult(note.Content, summary), nil
}

// GenerateTags asks the provider for a comma-separated tag list and splits
// it into clean entries.
func (svc *AIService) GenerateTags(ctx context.Context, text string, maxTags int) ([]string, error) {
	if svc.Provider == nil {
		return nil, apperr.ErrNotConfigured
	}
	if utf8.RuneCountInString(text) < minTagTextChars {
		return nil, fmt.Errorf("%w: text is too short for tag generation, minimum %d characters required",
			apperr.ErrValidation, minTagTextChars)
	}
	if maxTags == 0 {
		maxTags = defaultMaxTags
	}

	reply, err := svc.Provider.Complete(ctx,
		tagsSystemPrompt(maxTags),
		"Generate tags for this text: "+text,
		llm.WithMaxTokens(50),
		llm.WithTemperature(0.3),
	)
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, maxTags)
	for _, tag := range strings.Split(reply, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags, nil
}

// Stats reports summarization usage, derived entirely from the store. No
// provider call is made.
func (svc *AIService) Stats(ctx context.Context) (*model.AIStats, error) {
	summarized, err := svc.Notes.CountSummarized(ctx)
	if err != nil {
		return nil, err
	}
	total, err := svc.Notes.CountNotes(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := svc.Notes.RecentlySummarized(ctx, recentSummaries)
	if err != nil {
		return nil, err
	}

	rate := "0%"
	if total > 0 {
		rate = fmt.Sprintf("%.1f%%", float64(summarized)/float64(total)*100)
	}

	return &model.AIStats{
		SummarizedNotes:   summarized,
		TotalNotes:        total,
		SummarizationRate: rate,
		RecentSummaries:   recent,
	}, nil
}

// Lengths are counted in characters, not bytes, so multi-byte text reports
// the same numbers the client sees.
func newSummaryResult(original, summary string) *SummaryResult {
	originalLen := utf8.RuneCountInString(original)
	summaryLen := utf8.RuneCountInString(summary)
	ratio := float64(originalLen-summaryLen) / float64(originalLen) * 100
	return &SummaryResult{
		Summary:          summary,
		OriginalLength:   originalLen,
		SummaryLength:    summaryLen,
		CompressionRatio: fmt.Sprintf("%.1f", ratio),
	}
}
