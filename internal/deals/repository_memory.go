package deals

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryRepository backs tests; no Mongo required.
type InMemoryRepository struct {
	mu    sync.RWMutex
	deals map[primitive.ObjectID]*Deal
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		deals: make(map[primitive.ObjectID]*Deal),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, deal *Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	deal.ID = primitive.NewObjectID()
	deal.CreatedAt = now
	deal.UpdatedAt = now

	copied := *deal
	r.deals[deal.ID] = &copied
	return nil
}

func (r *InMemoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.deals[id]
	if !ok {
		return nil, ErrDealNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *InMemoryRepository) Update(ctx context.Context, deal *Deal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deals[deal.ID]; !ok {
		return ErrDealNotFound
	}
	deal.UpdatedAt = time.Now()

	copied := *deal
	r.deals[deal.ID] = &copied
	return nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deals[id]; !ok {
		return ErrDealNotFound
	}
	delete(r.deals, id)
	return nil
}

func (r *InMemoryRepository) ListByRestaurant(ctx context.Context, restaurantID primitive.ObjectID) ([]*Deal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var deals []*Deal
	for _, d := range r.deals {
		if d.Restaurant.ID == restaurantID {
			copied := *d
			deals = append(deals, &copied)
		}
	}
	return deals, nil
}

func (r *InMemoryRepository) CountActive(ctx context.Context, restaurantID primitive.ObjectID, now time.Time) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, d := range r.deals {
		if d.Restaurant.ID == restaurantID && d.ActiveAt(now) {
			count++
		}
	}
	return count, nil
}

func (r *InMemoryRepository) ExpirePast(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var modified int64
	for _, d := range r.deals {
		if !d.IsExpired && !d.EndDate.After(now) {
			d.IsExpired = true
			d.UpdatedAt = time.Now()
			modified++
		}
	}
	return modified, nil
}
