package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Categories and priorities accepted on a note.
var (
	Categories = []string{"Personal", "Work", "Study", "Ideas", "Tasks", "Other"}
	Priorities = []string{"Low", "Medium", "High"}
)

const (
	DefaultCategory = "Other"
	DefaultPriority = "Medium"
	DefaultColor    = "#ffffff"
)

// Reading speed used for the reading_time estimate.
const wordsPerMinute = 200

// MaxSummaryLength bounds stored summaries in characters.
const MaxSummaryLength = 500

// TruncateSummary clips a summary to MaxSummaryLength characters, counting
// runes so multi-byte text is never split.
func TruncateSummary(summary string) string {
	runes := []rune(summary)
	if len(runes) <= MaxSummaryLength {
		return summary
	}
	return string(runes[:MaxSummaryLength])
}

type Note struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title          string             `bson:"title" json:"title"`
	Content        string             `bson:"content" json:"content"`
	Summary        string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Tags           []string           `bson:"tags" json:"tags"`
	Category       string             `bson:"category" json:"category"`
	Priority       string             `bson:"priority" json:"priority"`
	IsArchived     bool               `bson:"is_archived" json:"isArchived"`
	IsFavorite     bool               `bson:"is_favorite" json:"isFavorite"`
	Color          string             `bson:"color" json:"color"`
	WordCount      int                `bson:"word_count" json:"wordCount"`
	ReadingTime    int                `bson:"reading_time" json:"readingTime"`
	LastSummarized *time.Time         `bson:"last_summarized,omitempty" json:"lastSummarized,omitempty"`
	UserID         string             `bson:"user_id,omitempty" json:"userId,omitempty"` // reserved for multi-user support
	SearchScore    float64            `bson:"score,omitempty" json:"searchScore,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ComputeDerived recalculates word_count and reading_time from content.
// Called on every write so aggregations can sum the stored values.
func (n *Note) ComputeDerived() {
	n.WordCount = len(strings.Fields(n.Content))
	n.ReadingTime = (n.WordCount + wordsPerMinute - 1) / wordsPerMinute
}

// Keyword families for the auto-tagging pass. The list is fixed; matching is
// a plain case-insensitive substring check.
var autoTagRules = []struct {
	keywords []string
	tag      string
}{
	{[]string{"meeting", "call"}, "meeting"},
	{[]string{"todo", "task"}, "task"},
	{[]string{"idea", "brainstorm"}, "idea"},
	{[]string{"project"}, "project"},
	{[]string{"deadline", "due"}, "deadline"},
}

// AutoTags scans content for the fixed keyword families and returns matching
// tags in rule order.
func AutoTags(content string) []string {
	lower := strings.ToLower(content)
	var tags []string
	for _, rule := range autoTagRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				tags = append(tags, rule.tag)
				break
			}
		}
	}
	return tags
}

// DedupeTags removes duplicates while preserving first-seen order. Always
// returns a non-nil slice so tags marshal as [] rather than null.
func DedupeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ValidCategory reports whether category is one of the accepted values.
func ValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ValidPriority reports whether priority is one of the accepted values.
func ValidPriority(priority string) bool {
	for _, p := range Priorities {
		if p == priority {
			return true
		}
	}
	return false
}
