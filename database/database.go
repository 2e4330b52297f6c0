package database

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"

	"github.com/Wmolina17/backProjectUniversity/internal/logging"
)

var DB *mongo.Database

func ConnectMongo(uri string, dbName string) *mongo.Client {
	opts := options.Client().ApplyURI(uri)

	client, err := mongo.Connect(opts)
	if err != nil {
		logging.L().Fatal("MongoDB connection error", zap.Error(err))
	}

	if err := client.Ping(context.TODO(), readpref.Primary()); err != nil {
		logging.L().Fatal("failed to ping MongoDB", zap.Error(err))
	}

	DB = client.Database(dbName)

	logging.L().Info("connected to MongoDB", zap.String("db", dbName))
	return client
}
