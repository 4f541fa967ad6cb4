package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the data-access contract.
// Service and middleware depend ONLY on this interface.
type UserRepository interface {
	Save(ctx context.Context, user *User) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	FindByConfirmToken(ctx context.Context, token string) (*User, error)
	SetEmailConfirmed(ctx context.Context, id primitive.ObjectID) error
}
