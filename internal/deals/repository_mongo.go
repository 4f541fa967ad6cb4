package deals

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoRepository struct {
	deals *mongo.Collection
}

func NewMongoRepository(mdb *mongo.Database) *MongoRepository {
	return &MongoRepository{deals: mdb.Collection("deals")}
}

func (r *MongoRepository) Create(ctx context.Context, deal *Deal) error {
	now := time.Now()
	deal.ID = primitive.NewObjectID()
	deal.CreatedAt = now
	deal.UpdatedAt = now

	_, err := r.deals.InsertOne(ctx, deal)
	return err
}

func (r *MongoRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Deal, error) {
	var deal Deal
	err := r.deals.FindOne(ctx, bson.M{"_id": id}).Decode(&deal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDealNotFound
	}
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *MongoRepository) Update(ctx context.Context, deal *Deal) error {
	deal.UpdatedAt = time.Now()

	res, err := r.deals.ReplaceOne(ctx, bson.M{"_id": deal.ID}, deal)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrDealNotFound
	}
	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.deals.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrDealNotFound
	}
	return nil
}

func (r *MongoRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]*Deal, error) {
	cur, err := r.deals.Find(ctx, bson.M{"restaurant.id": restaurantID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var deals []*Deal
	for cur.Next(ctx) {
		var d Deal
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		deals = append(deals, &d)
	}

	return deals, cur.Err()
}

func (r *MongoRepository) CountActive(ctx context.Context, restaurantID primitive.ObjectID, now time.Time) (int, error) {
	count, err := r.deals.CountDocuments(ctx, bson.M{
		"restaurant.id": restaurantID,
		"$or": bson.A{
			bson.M{"is_expired": false},
			bson.M{"end_date": bson.M{"$gt": now}},
		},
	})
	return int(count), err
}

func (r *MongoRepository) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.deals.UpdateMany(ctx,
		bson.M{
			"is_expired": false,
			"end_date":   bson.M{"$lte": now},
		},
		bson.M{
			"$set": bson.M{"is_expired": true, "updated_at": time.Now()},
		},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}
