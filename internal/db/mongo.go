package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect opens the Mongo client, verifies the connection and makes sure
// the indexes the API relies on exist.
func Connect(ctx context.Context, uri, database string) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetMinPoolSize(2)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	mdb := client.Database(database)
	if err := ensureIndexes(ctx, mdb); err != nil {
		return nil, err
	}

	return mdb, nil
}

// Disconnect closes the underlying client.
func Disconnect(ctx context.Context, mdb *mongo.Database) error {
	return mdb.Client().Disconnect(ctx)
}

func ensureIndexes(ctx context.Context, mdb *mongo.Database) error {
	_, err := mdb.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	// Deals are always read restaurant-scoped; the sweeper scans by
	// expiry state.
	_, err = mdb.Collection("deals").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "restaurant.id", Value: 1}}},
		{Keys: bson.D{{Key: "is_expired", Value: 1}, {Key: "end_date", Value: 1}}},
	})
	return err
}
