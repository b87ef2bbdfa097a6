package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dustatron/mcpoker/internal/model"
)

type MessageRepo interface {
	Create(ctx context.Context, message *model.Message) error
	// ListByRoomAsc returns messages oldest first.
	ListByRoomAsc(ctx context.Context, roomID string) ([]*model.Message, error)
	DeleteByRoom(ctx context.Context, roomID string) (int, error)
}

type messageRepo struct {
	collection *mongo.Collection
}

func NewMessageRepo(db *mongo.Database) MessageRepo {
	return &messageRepo{
		collection: db.Collection("messages"),
	}
}

func (r *messageRepo) Create(ctx context.Context, message *model.Message) error {
	_, err := r.collection.InsertOne(ctx, message)
	return err
}

func (r *messageRepo) ListByRoomAsc(ctx context.Context, roomID string) ([]*model.Message, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"roomId": roomID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var messages []*model.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepo) DeleteByRoom(ctx context.Context, roomID string) (int, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"roomId": roomID})
	if err != nil {
		return 0, err
	}
	return int(result.DeletedCount), nil
}
