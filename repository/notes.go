package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chronotes/model"
	"chronotes/store"
	"chronotes/utils"
)

func (r *Remote) findNotes(ctx context.Context, filter bson.M) ([]model.Note, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.notes.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	var notes []model.Note
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	return notes, nil
}

func (r *Remote) ListNotes(ctx context.Context) ([]model.Note, error) {
	return r.findNotes(ctx, r.scope())
}

func (r *Remote) ListFolderNotes(ctx context.Context, folderID string) ([]model.Note, error) {
	return r.findNotes(ctx, r.scoped(bson.M{"folder_id": folderID}))
}

// SearchNotes matches query against title, content and tags,
// case-insensitively.
func (r *Remote) SearchNotes(ctx context.Context, query string) ([]model.Note, error) {
	filter := r.scoped(bson.M{
		"$or": []bson.M{
			{"title": bson.M{"$regex": query, "$options": "i"}},
			{"content": bson.M{"$regex": query, "$options": "i"}},
			{"tags": bson.M{"$regex": query, "$options": "i"}},
		},
	})
	return r.findNotes(ctx, filter)
}

func (r *Remote) GetNote(ctx context.Context, id string) (model.Note, error) {
	var note model.Note
	err := r.notes.FindOne(ctx, r.scoped(bson.M{"_id": id})).Decode(&note)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Note{}, store.ErrNotFound
	}
	if err != nil {
		return model.Note{}, fmt.Errorf("get note %s: %w", id, err)
	}
	return note, nil
}

func (r *Remote) CreateNote(ctx context.Context, note model.Note) (model.Note, error) {
	now := time.Now()
	note.ID = utils.GenerateID()
	note.UserID = r.userID
	note.CreatedAt = now
	note.UpdatedAt = now
	if note.LastReviewedAt.IsZero() {
		note.LastReviewedAt = now
	}

	err := r.retry.Do(ctx, func() error {
		_, err := r.notes.InsertOne(ctx, note)
		return err
	})
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}
	return note, nil
}

func (r *Remote) UpdateNote(ctx context.Context, id string, upd store.NoteUpdate) (model.Note, error) {
	set := bson.M{"updated_at": time.Now()}
	if upd.FolderID != nil {
		set["folder_id"] = *upd.FolderID
	}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Content != nil {
		set["content"] = *upd.Content
	}
	if upd.Tags != nil {
		set["tags"] = *upd.Tags
	}
	if upd.Priority != nil {
		set["priority"] = *upd.Priority
	}
	if upd.LastReviewedAt != nil {
		set["last_reviewed_at"] = *upd.LastReviewedAt
	}

	var note model.Note
	err := r.retry.Do(ctx, func() error {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err := r.notes.FindOneAndUpdate(ctx, r.scoped(bson.M{"_id": id}),
			bson.M{"$set": set}, opts).Decode(&note)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.ErrNotFound
		}
		return err
	})
	if err != nil {
		return model.Note{}, err
	}
	return note, nil
}

func (r *Remote) DeleteNote(ctx context.Context, id string) error {
	return r.retry.Do(ctx, func() error {
		result, err := r.notes.DeleteOne(ctx, r.scoped(bson.M{"_id": id}))
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (r *Remote) CountNotes(ctx context.Context) (int64, error) {
	count, err := r.notes.CountDocuments(ctx, r.scope())
	if err != nil {
		return 0, fmt.Errorf("count notes: %w", err)
	}
	return count, nil
}
