package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/Wmolina17/backProjectUniversity/database"
	"github.com/Wmolina17/backProjectUniversity/internal/models"
)

type ResourceRepository struct {
	col *mongo.Collection
}

func NewResourceRepository() *ResourceRepository {
	return &ResourceRepository{col: database.DB.Collection("Resources")}
}

func (r *ResourceRepository) FindAll(ctx context.Context) ([]models.Resource, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var resources []models.Resource
	if err := cur.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *ResourceRepository) FindByIDs(ctx context.Context, ids []bson.ObjectID) ([]models.Resource, error) {
	if len(ids) == 0 {
		return []models.Resource{}, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var resources []models.Resource
	if err := cur.All(ctx, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id bson.ObjectID) (*models.Resource, error) {
	var res models.Resource
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&res)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResourceRepository) Insert(ctx context.Context, res *models.Resource) (bson.ObjectID, error) {
	ir, err := r.col.InsertOne(ctx, res)
	if err != nil {
		return bson.NilObjectID, err
	}
	oid, _ := ir.InsertedID.(bson.ObjectID)
	return oid, nil
}

func (r *ResourceRepository) SetFields(ctx context.Context, id bson.ObjectID, fields bson.M) error {
	ur, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if ur.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id bson.ObjectID) error {
	dr, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if dr.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// IncSavedCount moves the save counter by delta (+1 on save, -1 on
// unsave). The membership check lives in the controller; this is only the
// atomic step.
func (r *ResourceRepository) IncSavedCount(ctx context.Context, id bson.ObjectID, delta int) error {
	ur, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"savedCount": delta}})
	if err != nil {
		return err
	}
	if ur.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ResourceRepository) IncViewsCount(ctx context.Context, id bson.ObjectID) error {
	ur, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"viewsCount": 1}})
	if err != nil {
		return err
	}
	if ur.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
