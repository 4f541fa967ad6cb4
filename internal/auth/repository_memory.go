package auth

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InMemoryUserRepository backs tests; no Mongo required.
type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]*User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: make(map[primitive.ObjectID]*User),
	}
}

func (r *InMemoryUserRepository) Save(ctx context.Context, user *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *InMemoryUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *InMemoryUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemoryUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *InMemoryUserRepository) FindByConfirmToken(ctx context.Context, token string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ConfirmToken != "" && u.ConfirmToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *InMemoryUserRepository) SetEmailConfirmed(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.EmailConfirmed = true
	u.ConfirmToken = ""
	u.UpdatedAt = time.Now()
	return nil
}
