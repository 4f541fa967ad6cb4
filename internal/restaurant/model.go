package restaurant

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Status is the restaurant application lifecycle state. The zero value
// means the application was never started.
type Status string

const (
	StatusNone                  Status = ""
	StatusApplicationPending    Status = "APPLICATION_PENDING"
	StatusApplicationProcessing Status = "APPLICATION_PROCESSING"
	StatusApplicationAccepted   Status = "APPLICATION_ACCEPTED"
	StatusApplicationRejected   Status = "APPLICATION_REJECTED"
	StatusLive                  Status = "LIVE"
	StatusDisabled              Status = "DISABLED"
)

// Role is a staff role on a restaurant, ordered by privilege.
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// roleRank orders roles by privilege. A zero rank marks an unknown role.
var roleRank = map[Role]int{
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperAdmin: 3,
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return roleRank[r] > 0
}

type Geometry struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

type Location struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Nickname string             `bson:"nickname" json:"nickname"`
	Geometry Geometry           `bson:"geometry" json:"geometry"`
}

// Restaurant is the tenant entity. SuperAdmin is hidden from API output;
// the guard fetches it explicitly because it is the source of truth for
// the highest tier. SuperAdmin is never also listed in Admins/Users.
type Restaurant struct {
	ID                  primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name                string               `bson:"name" json:"name"`
	Status              Status               `bson:"status" json:"status"`
	SuperAdmin          primitive.ObjectID   `bson:"super_admin" json:"-"`
	Admins              []primitive.ObjectID `bson:"admins" json:"admins"`
	Users               []primitive.ObjectID `bson:"users" json:"users"`
	Locations           []Location           `bson:"locations" json:"locations"`
	Cuisines            []string             `bson:"cuisines" json:"cuisines"`
	DietaryRequirements []string             `bson:"dietary_requirements" json:"dietary_requirements"`
	CreatedAt           time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time            `bson:"updated_at" json:"updated_at"`
}

// LocationByID returns the matching location or nil.
func (r *Restaurant) LocationByID(id primitive.ObjectID) *Location {
	for i := range r.Locations {
		if r.Locations[i].ID == id {
			return &r.Locations[i]
		}
	}
	return nil
}

func (r *Restaurant) isAdmin(userID primitive.ObjectID) bool {
	for _, id := range r.Admins {
		if id == userID {
			return true
		}
	}
	return false
}

func (r *Restaurant) isUser(userID primitive.ObjectID) bool {
	for _, id := range r.Users {
		if id == userID {
			return true
		}
	}
	return false
}
