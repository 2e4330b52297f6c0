package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Wmolina17/backProjectUniversity/database"
	"github.com/Wmolina17/backProjectUniversity/internal/models"
)

type ForumRepository struct {
	col *mongo.Collection
}

func NewForumRepository() *ForumRepository {
	return &ForumRepository{col: database.DB.Collection("Forums")}
}

func (r *ForumRepository) FindAll(ctx context.Context) ([]models.Forum, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var forums []models.Forum
	if err := cur.All(ctx, &forums); err != nil {
		return nil, err
	}
	return forums, nil
}

func (r *ForumRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Forum, error) {
	if len(ids) == 0 {
		return []models.Forum{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var forums []models.Forum
	if err := cur.All(ctx, &forums); err != nil {
		return nil, err
	}
	return forums, nil
}

func (r *ForumRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Forum, error) {
	var f models.Forum
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindMessages fetches only the message history of one forum, for the
// initial frame of a chat session.
func (r *ForumRepository) FindMessages(ctx context.Context, id bson.ObjectID) ([]models.Message, error) {
	var f models.Forum
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&f)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if f.Messages == nil {
		return []models.Message{}, nil
	}
	return f.Messages, nil
}

func (r *ForumRepository) Insert(ctx context.Context, f *models.Forum) (bson.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, f)
	if err != nil {
		return bson.NilObjectID, err
	}
	oid, _ := res.InsertedID.(bson.ObjectID)
	return oid, nil
}

func (r *ForumRepository) SetFields(ctx context.Context, id bson.ObjectID, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ForumRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ForumRepository) PushMember(ctx context.Context, id bson.ObjectID, user models.UserSnapshot) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"activeUsers": user}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ForumRepository) PullMember(ctx context.Context, id bson.ObjectID, userID string) error {
	res, err := r.col.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{"activeUsers": bson.M{"userId": userID}}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PullMemberEverywhere drops a user from the active list of every forum.
// Used by account deletion; best effort, the caller does not roll back.
func (r *ForumRepository) PullMemberEverywhere(ctx context.Context, userID string) error {
	_, err := r.col.UpdateMany(
		ctx,
		bson.M{"activeUsers.userId": userID},
		bson.M{"$pull": bson.M{"activeUsers": bson.M{"userId": userID}}},
	)
	return err
}

// PushMessage appends one chat message to the persisted sequence. The chat
// handler broadcasts only after this returns, so a slow persist delays the
// fan-out but never reorders it.
func (r *ForumRepository) PushMessage(ctx context.Context, id bson.ObjectID, msg models.Message) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"messages": msg}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
