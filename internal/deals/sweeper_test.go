package deals

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func TestSweepExpiresPastDeals(t *testing.T) {
	repo := NewInMemoryRepository()
	sweeper := NewSweeper(repo, "@every 1h", zap.NewNop())
	now := time.Now()

	past := &Deal{
		Restaurant: RestaurantRef{ID: primitive.NewObjectID()},
		Name:       "Yesterday",
		StartDate:  now.AddDate(0, 0, -10),
		EndDate:    now.AddDate(0, 0, -1),
	}
	future := &Deal{
		Restaurant: RestaurantRef{ID: primitive.NewObjectID()},
		Name:       "Tomorrow",
		StartDate:  now.AddDate(0, 0, -1),
		EndDate:    now.AddDate(0, 0, 1),
	}
	if err := repo.Create(context.Background(), past); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Create(context.Background(), future); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expired, err := sweeper.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expired != 1 {
		t.Fatalf("expected 1 expired deal, got %d", expired)
	}

	stored, _ := repo.FindByID(context.Background(), past.ID)
	if !stored.IsExpired {
		t.Fatalf("past deal should be expired")
	}
	stored, _ = repo.FindByID(context.Background(), future.ID)
	if stored.IsExpired {
		t.Fatalf("future deal should not be expired")
	}
}

func TestSweepIsIdempotent(t *testing.T) {
	repo := NewInMemoryRepository()
	sweeper := NewSweeper(repo, "@every 1h", zap.NewNop())
	now := time.Now()

	past := &Deal{
		Restaurant: RestaurantRef{ID: primitive.NewObjectID()},
		Name:       "Yesterday",
		StartDate:  now.AddDate(0, 0, -10),
		EndDate:    now.AddDate(0, 0, -1),
	}
	if err := repo.Create(context.Background(), past); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := sweeper.Sweep(context.Background(), now); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expired, err := sweeper.Sweep(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if expired != 0 {
		t.Fatalf("second sweep should be a no-op, expired %d", expired)
	}

	stored, _ := repo.FindByID(context.Background(), past.ID)
	if !stored.IsExpired {
		t.Fatalf("deal should stay expired")
	}
}
