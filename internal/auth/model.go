package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRestaurant is the single restaurant association a principal can
// hold: which restaurant, and the role claimed on it. The claim is
// necessary but not sufficient — the restaurant document is the source
// of truth at authorization time.
type UserRestaurant struct {
	ID   primitive.ObjectID `bson:"id" json:"id"`
	Role string             `bson:"role" json:"role"`
}

// User is the authenticated principal.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"`
	EmailConfirmed bool               `bson:"email_confirmed" json:"email_confirmed"`
	ConfirmToken   string             `bson:"confirm_token,omitempty" json:"-"`
	Restaurant     *UserRestaurant    `bson:"restaurant,omitempty" json:"restaurant,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}
