package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dustatron/mcpoker/internal/model"
)

type VoteRepo interface {
	Create(ctx context.Context, vote *model.Vote) error
	GetByRoomAndParticipant(ctx context.Context, roomID, participantID string) (*model.Vote, error)
	ListByRoom(ctx context.Context, roomID string) ([]*model.Vote, error)
	ListRevealedByRoom(ctx context.Context, roomID string) ([]*model.Vote, error)
	Update(ctx context.Context, vote *model.Vote) error
	SetRevealedByRoom(ctx context.Context, roomID string, revealed bool) (int, error)
	DeleteByRoom(ctx context.Context, roomID string) (int, error)
	DeleteByParticipant(ctx context.Context, participantID string) (int, error)
}

type voteRepo struct {
	collection *mongo.Collection
}

func NewVoteRepo(db *mongo.Database) VoteRepo {
	return &voteRepo{
		collection: db.Collection("votes"),
	}
}

func (r *voteRepo) Create(ctx context.Context, vote *model.Vote) error {
	_, err := r.collection.InsertOne(ctx, vote)
	return err
}

func (r *voteRepo) GetByRoomAndParticipant(ctx context.Context, roomID, participantID string) (*model.Vote, error) {
	var vote model.Vote
	err := r.collection.FindOne(ctx, bson.M{
		"roomId":        roomID,
		"participantId": participantID,
	}).Decode(&vote)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil // No vote cast yet
		}
		return nil, err
	}

	return &vote, nil
}

func (r *voteRepo) ListByRoom(ctx context.Context, roomID string) ([]*model.Vote, error) {
	return r.list(ctx, bson.M{"roomId": roomID})
}

func (r *voteRepo) ListRevealedByRoom(ctx context.Context, roomID string) ([]*model.Vote, error) {
	return r.list(ctx, bson.M{"roomId": roomID, "revealed": true})
}

func (r *voteRepo) list(ctx context.Context, filter bson.M) ([]*model.Vote, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var votes []*model.Vote
	if err = cursor.All(ctx, &votes); err != nil {
		return nil, err
	}

	return votes, nil
}

func (r *voteRepo) Update(ctx context.Context, vote *model.Vote) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": vote.ID}, vote)
	return err
}

// SetRevealedByRoom flips the room-wide revealed flag on every vote row in
// one bulk update so no row is left observably out of step.
func (r *voteRepo) SetRevealedByRoom(ctx context.Context, roomID string, revealed bool) (int, error) {
	result, err := r.collection.UpdateMany(ctx,
		bson.M{"roomId": roomID},
		bson.M{"$set": bson.M{"revealed": revealed}},
	)
	if err != nil {
		return 0, err
	}
	return int(result.MatchedCount), nil
}

func (r *voteRepo) DeleteByRoom(ctx context.Context, roomID string) (int, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"roomId": roomID})
	if err != nil {
		return 0, err
	}
	return int(result.DeletedCount), nil
}

func (r *voteRepo) DeleteByParticipant(ctx context.Context, participantID string) (int, error) {
	result, err := r.collection.DeleteMany(ctx, bson.M{"participantId": participantID})
	if err != nil {
		return 0, err
	}
	return int(result.DeletedCount), nil
}
