package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dustatron/mcpoker/internal/model"
)

type HistoryRepo interface {
	Create(ctx context.Context, entry *model.HistoryEntry) error
	// ListByRoomDesc returns entries newest round first. A limit of 0 means
	// no limit.
	ListByRoomDesc(ctx context.Context, roomID string, limit int) ([]*model.HistoryEntry, error)
	LatestByRoom(ctx context.Context, roomID string) (*model.HistoryEntry, error)
	CountByRoom(ctx context.Context, roomID string) (int, error)
	Delete(ctx context.Context, id string) error
	DeleteByRoom(ctx context.Context, roomID string) (int, error)
}

type historyRepo struct {
	collection *mongo.Collection
}

func NewHistoryRepo(db *mongo.Database) HistoryRepo {
	return &historyRepo{
		collection: db.Collection("history"),
	}
}

func (r *historyRepo) Create(ctx context.Context, entry *model.HistoryEntry) error {
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}

func (r *historyRepo) ListByRoomDesc(ctx context.Context, roomID string, limit int) ([]*model.HistoryEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "roundNumber", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := r.collection.Find(ctx, bson.M{"roomId": roomID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.HistoryEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *historyRepo) LatestByRoom(ctx context.Context, roomID string) (*model.HistoryEntry, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "roundNumber", Value: -1}})

	var entry model.HistoryEntry
	err := r.collection.FindOne(ctx, bson.M{"roomId": roomID}, opts).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No rounds recorded yet
		}
		return nil, err
	}

	return &entry, nil
}

func (r *historyRepo) CountByRoom(ctx context.Context, roomID string) (int, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"roomId": roomID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (r *historyRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *historyRepo) DeleteByRoom(ctx context.Context, roomID string) (int, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"roomId": roomID})
	if err != nil {
		return 0, err
	}
	return int(result.DeletedCount), nil
}
