package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chronotes/model"
	"chronotes/store"
	"chronotes/utils"
)

// SaveFlashcards persists one generated batch. All-or-nothing from the
// caller's view: ids and timestamps are assigned up front and the batch is
// inserted in one call, so a failed generation run persists nothing.
func (r *Remote) SaveFlashcards(ctx context.Context, cards []model.Flashcard) error {
	if len(cards) == 0 {
		return nil
	}

	now := time.Now()
	docs := make([]interface{}, len(cards))
	for i, card := range cards {
		card.ID = utils.GenerateID()
		card.UserID = r.userID
		card.CreatedAt = now
		docs[i] = card
	}

	return r.retry.Do(ctx, func() error {
		_, err := r.flashcards.InsertMany(ctx, docs)
		return err
	})
}

func (r *Remote) findFlashcards(ctx context.Context, filter bson.M) ([]model.Flashcard, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.flashcards.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}
	defer cursor.Close(ctx)

	var cards []model.Flashcard
	if err := cursor.All(ctx, &cards); err != nil {
		return nil, fmt.Errorf("decode flashcards: %w", err)
	}
	return cards, nil
}

func (r *Remote) ListFlashcards(ctx context.Context, noteID string) ([]model.Flashcard, error) {
	return r.findFlashcards(ctx, r.scoped(bson.M{"note_id": noteID}))
}

func (r *Remote) ListAllFlashcards(ctx context.Context) ([]model.Flashcard, error) {
	return r.findFlashcards(ctx, r.scope())
}

func (r *Remote) DeleteFlashcard(ctx context.Context, id string) error {
	return r.retry.Do(ctx, func() error {
		result, err := r.flashcards.DeleteOne(ctx, r.scoped(bson.M{"_id": id}))
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}
