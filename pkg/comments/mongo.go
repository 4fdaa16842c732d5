package comments

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// Collection names used by MongoStore.
const (
	CommentsCollection = "comments"
	UsersCollection    = "users"
	AssetsCollection   = "assets"
)

// MongoStore reads the comment model from MongoDB.
type MongoStore struct {
	comments *mongo.Collection
	users    *mongo.Collection
	assets   *mongo.Collection
}

// NewMongoStore reads the comments, users and assets collections of db.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		comments: db.Collection(CommentsCollection),
		users:    db.Collection(UsersCollection),
		assets:   db.Collection(AssetsCollection),
	}
}

func (s *MongoStore) GetComment(ctx context.Context, id string) (Comment, error) {
	var c Comment
	return c, findByID(ctx, s.comments, id, &c)
}

func (s *MongoStore) GetUser(ctx context.Context, id string) (User, error) {
	var u User
	return u, findByID(ctx, s.users, id, &u)
}

func (s *MongoStore) GetAsset(ctx context.Context, id string) (Asset, error) {
	var a Asset
	return a, findByID(ctx, s.assets, id, &a)
}

func (s *MongoStore) DisableNotifications(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrEmptyID
	}
	res, err := s.users.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: userID}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "notification_settings", Value: bson.D{}}}}},
	)
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func findByID(ctx context.Context, coll *mongo.Collection, id string, dst any) error {
	if id == "" {
		return ErrEmptyID
	}
	err := coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(dst)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return errors.Join(ErrQueryFailed, err)
	}
	return nil
}
