package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chronotes/model"
	"chronotes/utils"
)

// AppendSnapshot writes an immutable history record. Snapshots are never
// updated or deleted individually; they go away only with delete-all or
// account deletion.
func (r *Remote) AppendSnapshot(ctx context.Context, snap model.NoteSnapshot) error {
	snap.ID = utils.GenerateID()
	snap.UserID = r.userID

	return r.retry.Do(ctx, func() error {
		_, err := r.history.InsertOne(ctx, snap)
		return err
	})
}

func (r *Remote) ListSnapshots(ctx context.Context, noteID string) ([]model.NoteSnapshot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "saved_at", Value: -1}})

	cursor, err := r.history.Find(ctx, r.scoped(bson.M{"note_id": noteID}), opts)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer cursor.Close(ctx)

	var snaps []model.NoteSnapshot
	if err := cursor.All(ctx, &snaps); err != nil {
		return nil, fmt.Errorf("decode snapshots: %w", err)
	}
	return snaps, nil
}
