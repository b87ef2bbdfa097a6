package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dustatron/mcpoker/internal/model"
)

type RoomRepo interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id string) error
	ListInactiveSince(ctx context.Context, cutoff time.Time) ([]*model.Room, error)
}

type roomRepo struct {
	collection *mongo.Collection
}

func NewRoomRepo(db *mongo.Database) RoomRepo {
	return &roomRepo{
		collection: db.Collection("rooms"),
	}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	_, err := r.collection.InsertOne(ctx, room)
	return err
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&room)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Room not found
		}
		return nil, err
	}

	return &room, nil
}

func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": room.ID}, room)
	return err
}

func (r *roomRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *roomRepo) ListInactiveSince(ctx context.Context, cutoff time.Time) ([]*model.Room, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"lastActiveAt": bson.M{"$lt": cutoff}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rooms []*model.Room
	if err = cursor.All(ctx, &rooms); err != nil {
		return nil, err
	}

	return rooms, nil
}
