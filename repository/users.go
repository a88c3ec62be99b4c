package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"chronotes/model"
	"chronotes/store"
)

type UserRepo struct {
	MongoCollection *mongo.Collection
}

func GetUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{
		MongoCollection: db.Collection(usersCollection),
	}
}

func (r *UserRepo) CreateUser(ctx context.Context, user *model.User) error {
	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{
		"$or": []bson.M{
			{"username": user.Username},
			{"email": user.Email},
		},
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return store.ErrAlreadyExists
	}

	_, err = r.MongoCollection.InsertOne(ctx, user)
	return err
}

func (r *UserRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepo) FindByID(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.MongoCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SetTwoFactor stores the TOTP secret and hashed recovery codes, flipping the
// enabled flag.
func (r *UserRepo) SetTwoFactor(ctx context.Context, userID, secret string, recoveryCodes []string, enabled bool) error {
	update := bson.M{"$set": bson.M{
		"two_factor_secret":  secret,
		"two_factor_enabled": enabled,
		"recovery_codes":     recoveryCodes,
	}}

	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"user_id": userID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *UserRepo) DeleteUser(ctx context.Context, userID string) error {
	result, err := r.MongoCollection.DeleteOne(ctx, bson.M{"user_id": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
