package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoUserRepository struct {
	users *mongo.Collection
}

func NewMongoUserRepository(mdb *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{users: mdb.Collection("users")}
}

func (r *MongoUserRepository) Save(ctx context.Context, user *User) error {
	now := time.Now()
	user.UpdatedAt = now

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
		user.CreatedAt = now
		_, err := r.users.InsertOne(ctx, user)
		return err
	}

	_, err := r.users.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

func (r *MongoUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	count, err := r.users.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUserRepository) FindByConfirmToken(ctx context.Context, token string) (*User, error) {
	return r.findOne(ctx, bson.M{"confirm_token": token})
}

func (r *MongoUserRepository) SetEmailConfirmed(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set":   bson.M{"email_confirmed": true, "updated_at": time.Now()},
		"$unset": bson.M{"confirm_token": ""},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *MongoUserRepository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
