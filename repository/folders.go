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

func (r *Remote) scope() bson.M {
	return bson.M{"user_id": r.userID}
}

func (r *Remote) scoped(filter bson.M) bson.M {
	filter["user_id"] = r.userID
	return filter
}

func (r *Remote) ListFolders(ctx context.Context) ([]model.Folder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.folders.Find(ctx, r.scope(), opts)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer cursor.Close(ctx)

	var folders []model.Folder
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, fmt.Errorf("decode folders: %w", err)
	}
	return folders, nil
}

func (r *Remote) GetFolder(ctx context.Context, id string) (model.Folder, error) {
	var folder model.Folder
	err := r.folders.FindOne(ctx, r.scoped(bson.M{"_id": id})).Decode(&folder)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Folder{}, store.ErrNotFound
	}
	if err != nil {
		return model.Folder{}, fmt.Errorf("get folder %s: %w", id, err)
	}
	return folder, nil
}

// siblingNames collects the display names of the user's folders, optionally
// skipping one folder (used when renaming it).
func (r *Remote) siblingNames(ctx context.Context, excludeID string) ([]string, error) {
	filter := r.scope()
	if excludeID != "" {
		filter["_id"] = bson.M{"$ne": excludeID}
	}

	cursor, err := r.folders.Find(ctx, filter,
		options.Find().SetProjection(bson.M{"name": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Name string `bson:"name"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.Name
	}
	return names, nil
}

func (r *Remote) CreateFolder(ctx context.Context, name string) (model.Folder, error) {
	var folder model.Folder
	err := r.retry.Do(ctx, func() error {
		names, err := r.siblingNames(ctx, "")
		if err != nil {
			return err
		}

		now := time.Now()
		folder = model.Folder{
			ID:        utils.GenerateID(),
			UserID:    r.userID,
			Name:      store.UniqueName(name, names),
			CreatedAt: now,
			UpdatedAt: now,
		}
		_, err = r.folders.InsertOne(ctx, folder)
		return err
	})
	if err != nil {
		return model.Folder{}, fmt.Errorf("create folder: %w", err)
	}
	return folder, nil
}

func (r *Remote) RenameFolder(ctx context.Context, id, name string) (model.Folder, error) {
	var folder model.Folder
	err := r.retry.Do(ctx, func() error {
		names, err := r.siblingNames(ctx, id)
		if err != nil {
			return err
		}

		update := bson.M{"$set": bson.M{
			"name":       store.UniqueName(name, names),
			"updated_at": time.Now(),
		}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

		err = r.folders.FindOneAndUpdate(ctx, r.scoped(bson.M{"_id": id}), update, opts).Decode(&folder)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return store.ErrNotFound
		}
		return err
	})
	if err != nil {
		return model.Folder{}, err
	}
	return folder, nil
}

// DeleteFolder cascades over the folder's notes first, then removes the
// folder. Not atomic: a failure between the two deletes leaves an empty
// folder behind rather than orphaned notes.
func (r *Remote) DeleteFolder(ctx context.Context, id string) error {
	return r.retry.Do(ctx, func() error {
		if _, err := r.notes.DeleteMany(ctx, r.scoped(bson.M{"folder_id": id})); err != nil {
			return err
		}

		result, err := r.folders.DeleteOne(ctx, r.scoped(bson.M{"_id": id}))
		if err != nil {
			return err
		}
		if result.DeletedCount == 0 {
			return store.ErrNotFound
		}
		return nil
	})
}

func (r *Remote) CountFolders(ctx context.Context) (int64, error) {
	count, err := r.folders.CountDocuments(ctx, r.scope())
	if err != nil {
		return 0, fmt.Errorf("count folders: %w", err)
	}
	return count, nil
}
