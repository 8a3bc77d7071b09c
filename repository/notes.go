package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"noteapi/apperr"
	"noteapi/model"
)

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection(notesCollection()),
	}
}

func notesCollection() string {
	if name := os.Getenv("NOTES_COLLECTION"); name != "" {
		return name
	}
	return "notes"
}

// FindOptions describes one listing request. When Search is set the text
// index drives the query and the structured filters are ignored.
type FindOptions struct {
	Search    string
	Category  string
	Priority  string
	Archived  bool
	Favorites bool
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// Maps API sort field names onto stored field names. Unknown fields fall
// back to created_at.
var sortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"title":     "title",
	"category":  "category",
	"priority":  "priority",
}

func (o FindOptions) filter() bson.M {
	if o.Search != "" {
		return bson.M{
			"$text":       bson.M{"$search": o.Search},
			"is_archived": false,
		}
	}

	filter := bson.M{"is_archived": o.Archived}
	if o.Category != "" && o.Category != "All" {
		filter["category"] = o.Category
	}
	if o.Priority != "" && o.Priority != "All" {
		filter["priority"] = o.Priority
	}
	if o.Favorites {
		filter["is_favorite"] = true
	}
	return filter
}

func (o FindOptions) sort() bson.D {
	if o.Search != "" {
		// Ranked by relevance; explicit sort fields do not apply to search.
		return bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}
	}

	field, ok := sortFields[o.SortBy]
	if !ok {
		field = "created_at"
	}
	direction := -1
	if o.SortOrder == "asc" {
		direction = 1
	}
	return bson.D{{Key: field, Value: direction}}
}

// FindNotes returns one page of notes plus the total count for the same
// filter, so pagination metadata stays consistent with the page contents.
func (r *NotesRepo) FindNotes(ctx context.Context, opts FindOptions) ([]*model.Note, int64, error) {
	filter := opts.filter()

	total, err := r.MongoCollection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	skip := int64((opts.Page - 1) * opts.PageSize)
	findOpts := options.Find().
		SetSort(opts.sort()).
		SetSkip(skip).
		SetLimit(int64(opts.PageSize))
	if opts.Search != "" {
		findOpts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
	}

	cursor, err := r.MongoCollection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, 0, err
	}
	return notes, total, nil
}

// SearchNotes runs a ranked full-text search over title, content and tags.
// Archived notes are excluded.
func (r *NotesRepo) SearchNotes(ctx context.Context, query string) ([]*model.Note, error) {
	filter := bson.M{
		"$text":       bson.M{"$search": query},
		"is_archived": false,
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}).
		SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// FindByCategory returns non-archived notes in a category, newest first,
// capped at 50.
func (r *NotesRepo) FindByCategory(ctx context.Context, category string) ([]*model.Note, error) {
	filter := bson.M{"category": category, "is_archived": false}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(50)

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote inserts a new note, stamping timestamps and derived fields.
// When the note carries no tags, the auto-tagging pass fills them from
// content keywords.
func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	now := time.Now().UTC()
	note.CreatedAt = now
	note.UpdatedAt = now
	note.ComputeDerived()

	if len(note.Tags) == 0 {
		note.Tags = model.AutoTags(note.Content)
	}
	note.Tags = model.DedupeTags(note.Tags)

	result, err := r.MongoCollection.InsertOne(ctx, note)
	if err != nil {
		return err
	}
	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		note.ID = id
	}
	return nil
}

func (r *NotesRepo) FindNoteByID(ctx context.Context, id string) (*model.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrInvalidID
	}

	var note model.Note
	err = r.MongoCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote persists the merged note document. Derived fields are
// recomputed, and the auto-tagging pass reruns when content changed and the
// note ended up with no tags, mirroring create.
func (r *NotesRepo) UpdateNote(ctx context.Context, id string, note *model.Note, contentChanged bool) (*model.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrInvalidID
	}

	note.UpdatedAt = time.Now().UTC()
	note.ComputeDerived()
	if contentChanged && len(note.Tags) == 0 {
		note.Tags = model.AutoTags(note.Content)
	}
	note.Tags = model.DedupeTags(note.Tags)

	set := bson.M{
		"title":        note.Title,
		"content":      note.Content,
		"summary":      note.Summary,
		"tags":         note.Tags,
		"category":     note.Category,
		"priority":     note.Priority,
		"is_archived":  note.IsArchived,
		"is_favorite":  note.IsFavorite,
		"color":        note.Color,
		"word_count":   note.WordCount,
		"reading_time": note.ReadingTime,
		"updated_at":   note.UpdatedAt,
	}
	// A nil pointer would be stored as an explicit null and make the note
	// look summarized to $exists queries.
	if note.LastSummarized != nil {
		set["last_summarized"] = note.LastSummarized
	}
	update := bson.M{"$set": set}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return nil, err
	}
	if result.MatchedCount == 0 {
		return nil, apperr.ErrNotFound
	}
	return note, nil
}

// DeleteNote removes a note and returns the deleted document.
func (r *NotesRepo) DeleteNote(ctx context.Context, id string) (*model.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrInvalidID
	}

	var note model.Note
	err = r.MongoCollection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// SetSummary writes a generated summary onto a note and stamps
// last_summarized, returning the updated document.
func (r *NotesRepo) SetSummary(ctx context.Context, id string, summary string) (*model.Note, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrInvalidID
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"summary":         model.TruncateSummary(summary),
		"last_summarized": now,
		"updated_at":      now,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err = r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// NotesOverview aggregates counts and word totals across all notes,
// archived included.
func (r *NotesRepo) NotesOverview(ctx context.Context) (*model.NotesOverview, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalNotes", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "archivedNotes", Value: bson.D{{Key: "$sum", Value: condCount("$is_archived")}}},
			{Key: "favoriteNotes", Value: bson.D{{Key: "$sum", Value: condCount("$is_favorite")}}},
			{Key: "totalWords", Value: bson.D{{Key: "$sum", Value: "$word_count"}}},
			{Key: "avgWordsPerNote", Value: bson.D{{Key: "$avg", Value: "$word_count"}}},
		}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []model.NotesOverview
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &model.NotesOverview{}, nil
	}
	return &rows[0], nil
}

func condCount(field string) bson.D {
	return bson.D{{Key: "$cond", Value: bson.A{
		bson.D{{Key: "$eq", Value: bson.A{field, true}}}, 1, 0,
	}}}
}

// CategoryBreakdown counts non-archived notes per category, largest bucket
// first.
func (r *NotesRepo) CategoryBreakdown(ctx context.Context) ([]model.CategoryCount, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "is_archived", Value: false}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
	}

	cursor, err := r.MongoCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	breakdown := make([]model.CategoryCount, 0)
	if err = cursor.All(ctx, &breakdown); err != nil {
		return nil, err
	}
	return breakdown, nil
}

func (r *NotesRepo) CountNotes(ctx context.Context) (int64, error) {
	return r.MongoCollection.CountDocuments(ctx, bson.M{})
}

// CountSummarized counts notes carrying a non-empty summary.
func (r *NotesRepo) CountSummarized(ctx context.Context) (int64, error) {
	filter := bson.M{"summary": bson.M{"$exists": true, "$ne": ""}}
	return r.MongoCollection.CountDocuments(ctx, filter)
}

// RecentlySummarized returns the notes most recently run through the
// summarizer, newest first, projected down to id, title and timestamp.
func (r *NotesRepo) RecentlySummarized(ctx context.Context, limit int) ([]model.SummaryRef, error) {
	filter := bson.M{"last_summarized": bson.M{"$type": "date"}}
	opts := options.Find().
		SetSort(bson.D{{Key: "last_summarized", Value: -1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.M{"title": 1, "last_summarized": 1})

	cursor, err := r.MongoCollection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	refs := make([]model.SummaryRef, 0)
	if err = cursor.All(ctx, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}
