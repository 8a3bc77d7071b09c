package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupIndexes creates the indexes the notes queries rely on. Safe to call
// on every startup; Mongo treats matching definitions as a no-op.
func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	collection := db.Collection(notesCollection())

	indexes := []mongo.IndexModel{
		// Full-text search across title, content and tags.
		{
			Keys: bson.D{
				{Key: "title", Value: "text"},
				{Key: "content", Value: "text"},
				{Key: "tags", Value: "text"},
			},
			Options: options.Index().
				SetName("text_search").
				SetDefaultLanguage("english").
				SetWeights(bson.D{
					{Key: "title", Value: 10},
					{Key: "content", Value: 5},
					{Key: "tags", Value: 3},
				}),
		},
		// Default listing order.
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().
				SetName("notes_created_desc"),
		},
		// Category-scoped retrieval.
		{
			Keys: bson.D{{Key: "category", Value: 1}},
			Options: options.Index().
				SetName("notes_category"),
		},
		// Favorites listing, newest first.
		{
			Keys: bson.D{
				{Key: "is_favorite", Value: -1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().
				SetName("notes_favorite_created"),
		},
	}

	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create notes indexes: %w", err)
	}

	log.Println("Successfully created notes indexes")
	return nil
}
