package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dustatron/mcpoker/internal/model"
)

type ParticipantRepo interface {
	Create(ctx context.Context, participant *model.Participant) error
	GetByID(ctx context.Context, id string) (*model.Participant, error)
	GetByRoomAndName(ctx context.Context, roomID, name string) (*model.Participant, error)
	ListByRoom(ctx context.Context, roomID string) ([]*model.Participant, error)
	ListConnectedBefore(ctx context.Context, cutoff time.Time) ([]*model.Participant, error)
	Update(ctx context.Context, participant *model.Participant) error
	Delete(ctx context.Context, id string) error
	DeleteByRoom(ctx context.Context, roomID string) (int, error)
}

type participantRepo struct {
	collection *mongo.Collection
}

func NewParticipantRepo(db *mongo.Database) ParticipantRepo {
	return &participantRepo{
		collection: db.Collection("participants"),
	}
}

func (r *participantRepo) Create(ctx context.Context, participant *model.Participant) error {
	_, err := r.collection.InsertOne(ctx, participant)
	return err
}

func (r *participantRepo) GetByID(ctx context.Context, id string) (*model.Participant, error) {
	var participant model.Participant
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&participant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // Participant not found
		}
		return nil, err
	}

	return &participant, nil
}

func (r *participantRepo) GetByRoomAndName(ctx context.Context, roomID, name string) (*model.Participant, error) {
	var participant model.Participant
	err := r.collection.FindOne(ctx, bson.M{"roomId": roomID, "name": name}).Decode(&participant)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &participant, nil
}

func (r *participantRepo) ListByRoom(ctx context.Context, roomID string) ([]*model.Participant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"roomId": roomID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []*model.Participant
	if err = cursor.All(ctx, &participants); err != nil {
		return nil, err
	}

	return participants, nil
}

// ListConnectedBefore scans every room for connected participants whose last
// heartbeat predates the cutoff.
func (r *participantRepo) ListConnectedBefore(ctx context.Context, cutoff time.Time) ([]*model.Participant, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"connected": true,
		"lastSeen":  bson.M{"$lt": cutoff},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var participants []*model.Participant
	if err = cursor.All(ctx, &participants); err != nil {
		return nil, err
	}

	return participants, nil
}

func (r *participantRepo) Update(ctx context.Context, participant *model.Participant) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": participant.ID}, participant)
	return err
}

func (r *participantRepo) Delete(ctx context.Context, id string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *participantRepo) DeleteByRoom(ctx context.Context, roomID string) (int, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"roomId": roomID})
	if err != nil {
		return 0, err
	}
	return int(result.DeletedCount), nil
}
