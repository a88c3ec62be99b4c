package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes every Chronotes collection relies on.
// Called once at startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		foldersCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "name", Value: 1}}},
		},
		notesCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "folder_id", Value: 1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "last_reviewed_at", Value: 1}}},
		},
		historyCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "note_id", Value: 1}, {Key: "saved_at", Value: -1}}},
		},
		flashcardsCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "note_id", Value: 1}}},
		},
		usersCollection: {
			{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		sessionsCollection: {
			{Keys: bson.D{{Key: "session_id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "is_active", Value: 1}}},
		},
	}

	for coll, indexes := range specs {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes for %s: %w", coll, err)
		}
	}
	return nil
}
