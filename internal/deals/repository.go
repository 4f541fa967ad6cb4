package deals

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrDealNotFound = errors.New("deal not found")

// Repository defines the data-access contract. Reads return raw stored
// documents; every derived metric is computed in reporting.go so it can
// be tested without a store.
type Repository interface {
	Create(ctx context.Context, deal *Deal) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*Deal, error)
	Update(ctx context.Context, deal *Deal) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// ListByRestaurant returns every deal owned by the restaurant.
	ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]*Deal, error)

	// CountActive counts deals that still hold a quota slot at now:
	// is_expired=false OR end_date > now.
	CountActive(ctx context.Context, restaurantID primitive.ObjectID, now time.Time) (int, error)

	// ExpirePast flags every non-expired deal whose end date has passed.
	// Returns how many documents were modified.
	ExpirePast(ctx context.Context, now time.Time) (int64, error)
}
