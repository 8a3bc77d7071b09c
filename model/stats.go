package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NotesOverview is the single-row result of the stats aggregation across all
// notes, archived included.
type NotesOverview struct {
	TotalNotes      int     `bson:"totalNotes" json:"totalNotes"`
	ArchivedNotes   int     `bson:"archivedNotes" json:"archivedNotes"`
	FavoriteNotes   int     `bson:"favoriteNotes" json:"favoriteNotes"`
	TotalWords      int     `bson:"totalWords" json:"totalWords"`
	AvgWordsPerNote float64 `bson:"avgWordsPerNote" json:"avgWordsPerNote"`
}

// CategoryCount is one bucket of the per-category breakdown. Archived notes
// are excluded from the breakdown.
type CategoryCount struct {
	Category string `bson:"_id" json:"category"`
	Count    int    `bson:"count" json:"count"`
}

type NotesStats struct {
	Overview          NotesOverview   `json:"overview"`
	CategoryBreakdown []CategoryCount `json:"categoryBreakdown"`
}

// SummaryRef is the projection used for the recently-summarized listing.
type SummaryRef struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Title          string             `bson:"title" json:"title"`
	LastSummarized *time.Time         `bson:"last_summarized,omitempty" json:"lastSummarized,omitempty"`
}

type AIStats struct {
	SummarizedNotes   int64        `json:"summarizedNotes"`
	TotalNotes        int64        `json:"totalNotes"`
	SummarizationRate string       `json:"summarizationRate"`
	RecentSummaries   []SummaryRef `json:"recentSummaries"`
}
