package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"chronotes/model"
	"chronotes/store"
)

type SessionRepo struct {
	MongoCollection *mongo.Collection
}

func GetSessionRepo(db *mongo.Database) *SessionRepo {
	return &SessionRepo{
		MongoCollection: db.Collection(sessionsCollection),
	}
}

func (r *SessionRepo) CreateSession(ctx context.Context, session *model.Session) error {
	_, err := r.MongoCollection.InsertOne(ctx, session)
	return err
}

func (r *SessionRepo) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	var session model.Session
	err := r.MongoCollection.FindOne(ctx, bson.M{"session_id": sessionID}).Decode(&session)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepo) TouchSession(ctx context.Context, sessionID string) error {
	update := bson.M{"$set": bson.M{"last_activity_at": time.Now()}}
	_, err := r.MongoCollection.UpdateOne(ctx, bson.M{"session_id": sessionID}, update)
	return err
}

func (r *SessionRepo) EndSession(ctx context.Context, sessionID string) error {
	update := bson.M{"$set": bson.M{"is_active": false}}
	result, err := r.MongoCollection.UpdateOne(ctx, bson.M{"session_id": sessionID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *SessionRepo) GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_activity_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"user_id": userID, "is_active": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []*model.Session
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepo) EndAllUserSessions(ctx context.Context, userID string) error {
	update := bson.M{"$set": bson.M{"is_active": false}}
	_, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"user_id": userID, "is_active": true}, update)
	return err
}
