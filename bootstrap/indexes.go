package bootstrap

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// EnsureUserIndexes backs the "email is unique across all Users" rule with
// a real constraint instead of relying on the pre-insert lookup alone.
func EnsureUserIndexes(db *mongo.Database) error {
	_, err := db.Collection("Users").Indexes().CreateOne(
		context.Background(),
		mongo.IndexModel{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email"),
		},
	)
	return err
}
