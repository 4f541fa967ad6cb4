package restaurant

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrRestaurantNotFound = errors.New("restaurant not found")

// Repository defines the data-access contract. The guard depends ONLY on
// this interface.
type Repository interface {
	// FindByID fetches a restaurant including the super_admin field.
	FindByID(ctx context.Context, id primitive.ObjectID) (*Restaurant, error)
	Save(ctx context.Context, rest *Restaurant) error
}
