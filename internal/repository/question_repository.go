package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/Wmolina17/backProjectUniversity/database"
	"github.com/Wmolina17/backProjectUniversity/internal/models"
)

type QuestionRepository struct {
	col *mongo.Collection
}

func NewQuestionRepository() *QuestionRepository {
	return &QuestionRepository{col: database.DB.Collection("Questions")}
}

func (r *QuestionRepository) FindAll(ctx context.Context) ([]models.Question, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) FindByUser(ctx context.Context, userID string) ([]models.Question, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Question, error) {
	if len(ids) == 0 {
		return []models.Question{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var questions []models.Question
	if err := cur.All(ctx, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *QuestionRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Question, error) {
	var q models.Question
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) Insert(ctx context.Context, q *models.Question) (bson.ObjectID, error) {
	res, err := r.col.InsertOne(ctx, q)
	if err != nil {
		return bson.NilObjectID, err
	}
	oid, _ := res.InsertedID.(bson.ObjectID)
	return oid, nil
}

// FetchAndCountView is the atomic fetch-and-increment behind the detail
// view: one FindOneAndUpdate, returning the post-increment document.
func (r *QuestionRepository) FetchAndCountView(ctx context.Context, id bson.ObjectID) (*models.Question, error) {
	var q models.Question
	err := r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"viewsCount": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&q)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) SetFields(ctx context.Context, id bson.ObjectID, fields bson.M) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *QuestionRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// PushAnswer appends the answer and bumps answersCount in the same update,
// keeping the counter in lockstep with the slice.
func (r *QuestionRepository) PushAnswer(ctx context.Context, id bson.ObjectID, ans models.Answer) error {
	res, err := r.col.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$push": bson.M{"answers": ans},
			"$inc":  bson.M{"answersCount": 1},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyVote records one vote on the answer at the given index using
// positional $inc and $push. The caller has already checked both vote
// lists; this only performs the mutation.
func (r *QuestionRepository) ApplyVote(ctx context.Context, id bson.ObjectID, index int, action, userID string) error {
	var counter, list string
	switch action {
	case "like":
		counter = fmt.Sprintf("answers.%d.likes", index)
		list = fmt.Sprintf("answers.%d.listLike", index)
	case "dislike":
		counter = fmt.Sprintf("answers.%d.dislikes", index)
		list = fmt.Sprintf("answers.%d.listDeslike", index)
	default:
		return fmt.Errorf("invalid action %q", action)
	}

	res, err := r.col.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc":  bson.M{counter: 1},
			"$push": bson.M{list: userID},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
