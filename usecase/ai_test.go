package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"noteapi/apperr"
	"noteapi/llm"
	"noteapi/model"
)

// fakeProvider records every completion call and returns a canned reply.
type fakeProvider struct {
	reply string
	err   error

	calls []providerCall
}

type providerCall struct {
	system string
	prompt string
	opts   llm.Options
}

func (p *fakeProvider) Complete(ctx context.Context, system, prompt string, opts ...llm.Option) (string, error) {
	options := llm.Options{}
	for _, opt := range opts {
		opt(&options)
	}
	p.calls = append(p.calls, providerCall{system: system, prompt: prompt, opts: options})
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

// fakeSummaryStore serves a single note from memory.
type fakeSummaryStore struct {
	note *model.Note

	total      int64
	summarized int64
	recent     []model.SummaryRef

	setSummaryID    string
	setSummaryValue string
}

func (s *fakeSummaryStore) FindNoteByID(ctx context.Context, id string) (*model.Note, error) {
	if s.note == nil || s.note.ID.Hex() != id {
		return nil, apperr.ErrNotFound
	}
	copied := *s.note
	return &copied, nil
}

func (s *fakeSummaryStore) SetSummary(ctx context.Context, id string, summary string) (*model.Note, error) {
	if s.note == nil || s.note.ID.Hex() != id {
		return nil, apperr.ErrNotFound
	}
	s.setSummaryID = id
	s.setSummaryValue = summary
	now := time.Now().UTC()
	s.note.Summary = summary
	s.note.LastSummarized = &now
	copied := *s.note
	return &copied, nil
}

func (s *fakeSummaryStore) CountNotes(ctx context.Context) (int64, error)      { return s.total, nil }
func (s *fakeSummaryStore) CountSummarized(ctx context.Context) (int64, error) { return s.summarized, nil }

func (s *fakeSummaryStore) RecentlySummarized(ctx context.Context, limit int) ([]model.SummaryRef, error) {
	if limit < len(s.recent) {
		return s.recent[:limit], nil
	}
	return s.recent, nil
}

func TestSummarizeTextRejectsShortInput(t *testing.T) {
	provider := &fakeProvider{reply: "summary"}
	svc := &AIService{Notes: &fakeSummaryStore{}, Provider: provider}

	shortText := strings.Repeat("a", 49)
	_, err := svc.SummarizeText(context.Background(), shortText, 0)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(provider.calls) != 0 {
		t.Errorf("provider called %d times for rejected input, want 0", len(provider.calls))
	}
}

func TestSummarizeText(t *testing.T) {
	text := strings.Repeat("a", 100)
	provider := &fakeProvider{reply: strings.Repeat("b", 40)}
	svc := &AIService{Notes: &fakeSummaryStore{}, Provider: provider}

	result, err := svc.SummarizeText(context.Background(), text, 0)
	if err != nil {
		t.Fatalf("SummarizeText: %v", err)
	}

	if result.Summary != provider.reply {
		t.Errorf("Summary = %q, want %q", result.Summary, provider.reply)
	}
	if result.OriginalLength != 100 || result.SummaryLength != 40 {
		t.Errorf("lengths = %d/%d, want 100/40", result.OriginalLength, result.SummaryLength)
	}
	if result.CompressionRatio != "60.0" {
		t.Errorf("CompressionRatio = %q, want %q", result.CompressionRatio, "60.0")
	}

	if len(provider.calls) != 1 {
		t.Fatalf("provider called %d times, want 1", len(provider.calls))
	}
	call := provider.calls[0]
	if call.opts.MaxTokens != defaultMaxLength/2 {
		t.Errorf("MaxTokens = %d, want %d", call.opts.MaxTokens, defaultMaxLength/2)
	}
	if call.opts.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", call.opts.Temperature)
	}
	if !strings.Contains(call.system, "150 characters or less") {
		t.Errorf("system prompt missing default max length: %q", call.system)
	}
	if call.prompt != "Please summarize this text: "+text {
		t.Errorf("unexpected prompt %q", call.prompt)
	}
}

func TestSummarizeTextCountsCharactersNotBytes(t *testing.T) {
	provider := &fakeProvider{reply: "kurz"}
	svc := &AIService{Notes: &fakeSummaryStore{}, Provider: provider}

	// 49 two-byte characters: 98 bytes but below the character floor
	shortText := strings.Repeat("ü", 49)
	if _, err := svc.SummarizeText(context.Background(), shortText, 0); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error for 49-character text, got %v", err)
	}
	if len(provider.calls) != 0 {
		t.Errorf("provider called %d times for rejected input, want 0", len(provider.calls))
	}

	okText := strings.Repeat("ü", 50)
	result, err := svc.SummarizeText(context.Background(), okText, 0)
	if err != nil {
		t.Fatalf("SummarizeText: %v", err)
	}
	if result.OriginalLength != 50 {
		t.Errorf("OriginalLength = %d, want 50 characters", result.OriginalLength)
	}
	if result.SummaryLength != 4 {
		t.Errorf("SummaryLength = %d, want 4", result.SummaryLength)
	}
}

func TestSummarizeNoteTruncatesLongReply(t *testing.T) {
	note := &model.Note{
		ID:      primitive.NewObjectID(),
		Title:   "Epic",
		Content: strings.Repeat("c", 120),
	}
	store := &fakeSummaryStore{note: note}
	provider := &fakeProvider{reply: strings.Repeat("s", 700)}
	svc := &AIService{Notes: store, Provider: provider}

	updated, result, err := svc.SummarizeNote(context.Background(), note.ID.Hex(), 0)
	if err != nil {
		t.Fatalf("SummarizeNote: %v", err)
	}
	if len([]rune(store.setSummaryValue)) != model.MaxSummaryLength {
		t.Errorf("persisted summary length = %d, want %d", len([]rune(store.setSummaryValue)), model.MaxSummaryLength)
	}
	if updated.Summary != result.Summary {
		t.Error("returned summary differs from persisted summary")
	}
	if result.SummaryLength != model.MaxSummaryLength {
		t.Errorf("SummaryLength = %d, want %d", result.SummaryLength, model.MaxSummaryLength)
	}
}

func TestSummarizeTextCustomMaxLength(t *testing.T) {
	provider := &fakeProvider{reply: "short"}
	svc := &AIService{Notes: &fakeSummaryStore{}, Provider: provider}

	if _, err := svc.SummarizeText(context.Background(), strings.Repeat("a", 60), 300); err != nil {
		t.Fatalf("SummarizeText: %v", err)
	}
	if got := provider.calls[0].opts.MaxTokens; got != 150 {
		t.Errorf("MaxTokens = %d, want 150", got)
	}
	if !strings.Contains(provider.calls[0].system, "300 characters or less") {
		t.Errorf("system prompt missing custom max length: %q", provider.calls[0].system)
	}
}

func TestSummarizeTextWithoutProvider(t *testing.T) {
	svc := &AIService{Notes: &fakeSummaryStore{}}
	if _, err := svc.SummarizeText(context.Background(), strings.Repeat("a", 60), 0); !errors.Is(err, apperr.ErrNotConfigured) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestSummarizeNote(t *testing.T) {
	note := &model.Note{
		ID:      primitive.NewObjectID(),
		Title:   "Project kickoff",
		Content: strings.Repeat("c", 120),
	}
	store := &fakeSummaryStore{note: note}
	provider := &fakeProvider{reply: "kickoff summary"}
	svc := &AIService{Notes: store, Provider: provider}

	updated, result, err := svc.SummarizeNote(context.Background(), note.ID.Hex(), 0)
	if err != nil {
		t.Fatalf("SummarizeNote: %v", err)
	}

	if store.setSummaryID != note.ID.Hex() || store.setSummaryValue != "kickoff summary" {
		t.Errorf("summary persisted as (%q, %q), want (%q, %q)",
			store.setSummaryID, store.setSummaryValue, note.ID.Hex(), "kickoff summary")
	}
	if updated.Summary != "kickoff summary" {
		t.Errorf("updated.Summary = %q, want %q", updated.Summary, "kickoff summary")
	}
	if updated.LastSummarized == nil {
		t.Error("updated.LastSummarized is nil")
	}
	if result.OriginalLength != 120 {
		t.Errorf("OriginalLength = %d, want 120", result.OriginalLength)
	}

	wantPrompt := `Please summarize this note titled "Project kickoff": ` + note.Content
	if provider.calls[0].prompt != wantPrompt {
		t.Errorf("prompt = %q, want %q", provider.calls[0].prompt, wantPrompt)
	}
}

func TestSummarizeNoteMissing(t *testing.T) {
	svc := &AIService{Notes: &fakeSummaryStore{}, Provider: &fakeProvider{reply: "x"}}
	_, _, err := svc.SummarizeNote(context.Background(), primitive.NewObjectID().Hex(), 0)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestSummarizeNoteShortContent(t *testing.T) {
	note := &model.Note{ID: primitive.NewObjectID(), Title: "Stub", Content: "too short"}
	provider := &fakeProvider{reply: "x"}
	svc := &AIService{Notes: &fakeSummaryStore{note: note}, Provider: provider}

	_, _, err := svc.SummarizeNote(context.Background(), note.ID.Hex(), 0)
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(provider.calls) != 0 {
		t.Errorf("provider called %d times, want 0", len(provider.calls))
	}
}

func TestGenerateTags(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []string
	}{
		{
			name:  "CommaSeparated",
			reply: "golang, testing, backend",
			want:  []string{"golang", "testing", "backend"},
		},
		{
			name:  "ExtraWhitespaceAndEmptyEntries",
			reply: " api ,, databases , ",
			want:  []string{"api", "databases"},
		},
		{
			name:  "SingleTag",
			reply: "notes",
			want:  []string{"notes"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{reply: tt.reply}
			svc := &AIService{Notes: &fakeSummaryStore{}, Provider: provider}

			got, err := svc.GenerateTags(context.Background(), "meeting notes about the roadmap", 0)
			if err != nil {
				t.Fatalf("GenerateTags: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("tags = %v, want %v", got, tt.want)
			}
			if got := provider.calls[0].opts.MaxTokens; got != 50 {
				t.Errorf("MaxTokens = %d, want 50", got)
			}
			if !strings.Contains(provider.calls[0].system, "up to 5 relevant") {
				t.Errorf("system prompt missing default tag count: %q", provider.calls[0].system)
			}
		})
	}
}

func TestGenerateTagsRejectsShortText(t *testing.T) {
	provider := &fakeProvider{reply: "x"}
	svc := &AIService{Notes: &fakeSummaryStore{}, Provider: provider}

	if _, err := svc.GenerateTags(context.Background(), "tiny", 0); !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if len(provider.calls) != 0 {
		t.Errorf("provider called %d times, want 0", len(provider.calls))
	}
}

func TestGenerateTagsProviderFailure(t *testing.T) {
	provider := &fakeProvider{err: llm.ErrRateLimited}
	svc := &AIService{Notes: &fakeSummaryStore{}, Provider: provider}

	if _, err := svc.GenerateTags(context.Background(), "meeting notes about the roadmap", 0); !errors.Is(err, llm.ErrRateLimited) {
		t.Fatalf("expected rate-limit error, got %v", err)
	}
}

func TestAIStats(t *testing.T) {
	now := time.Now().UTC()
	store := &fakeSummaryStore{
		total:      8,
		summarized: 3,
		recent: []model.SummaryRef{
			{Title: "First", LastSummarized: &now},
		},
	}
	svc := &AIService{Notes: store}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.SummarizedNotes != 3 || stats.TotalNotes != 8 {
		t.Errorf("counts = %d/%d, want 3/8", stats.SummarizedNotes, stats.TotalNotes)
	}
	if stats.SummarizationRate != "37.5%" {
		t.Errorf("SummarizationRate = %q, want %q", stats.SummarizationRate, "37.5%")
	}
	if len(stats.RecentSummaries) != 1 || stats.RecentSummaries[0].Title != "First" {
		t.Errorf("unexpected recent summaries %v", stats.RecentSummaries)
	}
}

func TestAIStatsEmptyCollection(t *testing.T) {
	svc := &AIService{Notes: &fakeSummaryStore{}}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.SummarizationRate != "0%" {
		t.Errorf("SummarizationRate = %q, want %q", stats.SummarizationRate, "0%")
	}
}
