package restaurant

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryRepository backs tests; no Mongo required.
type InMemoryRepository struct {
	mu          sync.RWMutex
	restaurants map[primitive.ObjectID]*Restaurant
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		restaurants: make(map[primitive.ObjectID]*Restaurant),
	}
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rest, ok := r.restaurants[id]
	if !ok {
		return nil, ErrRestaurantNotFound
	}
	copied := *rest
	return &copied, nil
}

func (r *InMemoryRepository) Save(ctx context.Context, rest *Restaurant) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if rest.ID.IsZero() {
		rest.ID = primitive.NewObjectID()
		rest.CreatedAt = now
	}
	rest.UpdatedAt = now

	copied := *rest
	r.restaurants[rest.ID] = &copied
	return nil
}
