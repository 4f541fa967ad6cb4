package restaurant

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepository struct {
	restaurants *mongo.Collection
}

func NewMongoRepository(mdb *mongo.Database) *MongoRepository {
	return &MongoRepository{restaurants: mdb.Collection("restaurants")}
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Restaurant, error) {
	var rest Restaurant
	err := r.restaurants.FindOne(ctx, bson.M{"_id": id}).Decode(&rest)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrRestaurantNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *MongoRepository) Save(ctx context.Context, rest *Restaurant) error {
	now := time.Now()
	rest.UpdatedAt = now

	if rest.ID.IsZero() {
		rest.ID = primitive.NewObjectID()
		rest.CreatedAt = now
		_, err := r.restaurants.InsertOne(ctx, rest)
		return err
	}

	_, err := r.restaurants.ReplaceOne(ctx, bson.M{"_id": rest.ID}, rest)
	return err
}
