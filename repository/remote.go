// Package repository implements the remote storage backend for authenticated
// sessions. Every document is scoped by a user_id column; the client-side
// filter is a convenience, server-side authorization is the real isolation
// boundary. Every mutation goes through the bounded retry policy before a
// failure is reported to the caller.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"chronotes/services"
)

const (
	foldersCollection    = "folders"
	notesCollection      = "notes"
	historyCollection    = "note_history"
	flashcardsCollection = "flashcards"
	usersCollection      = "users"
	sessionsCollection   = "sessions"
)

// Remote is a store.Backend over MongoDB, scoped to one user.
type Remote struct {
	folders    *mongo.Collection
	notes      *mongo.Collection
	history    *mongo.Collection
	flashcards *mongo.Collection
	userID     string
	retry      services.RetryPolicy
}

func NewRemote(db *mongo.Database, retry services.RetryPolicy, userID string) *Remote {
	return &Remote{
		folders:    db.Collection(foldersCollection),
		notes:      db.Collection(notesCollection),
		history:    db.Collection(historyCollection),
		flashcards: db.Collection(flashcardsCollection),
		userID:     userID,
		retry:      retry,
	}
}

// DeleteAll wipes every document the user owns across all collections.
// Collections are cleared one by one; a failure leaves earlier deletions in
// place, mirroring the non-atomic cascade contract.
func (r *Remote) DeleteAll(ctx context.Context) error {
	return r.retry.Do(ctx, func() error {
		for _, coll := range []*mongo.Collection{r.flashcards, r.history, r.notes, r.folders} {
			if _, err := coll.DeleteMany(ctx, r.scope()); err != nil {
				return err
			}
		}
		return nil
	})
}
