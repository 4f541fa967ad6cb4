package deals

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bullpull02/foodie-api/internal/restaurant"
)

// RestaurantRef is the owning-restaurant snapshot taken at creation time.
type RestaurantRef struct {
	ID   primitive.ObjectID `bson:"id" json:"id"`
	Name string             `bson:"name" json:"name"`
}

// DealLocation is a restaurant location denormalized onto the deal.
type DealLocation struct {
	LocationID primitive.ObjectID  `bson:"location_id" json:"location_id"`
	Nickname   string              `bson:"nickname" json:"nickname"`
	Geometry   restaurant.Geometry `bson:"geometry" json:"geometry"`
}

// Engagement tracks a counter together with the users behind it, so
// unique counts can be derived.
type Engagement struct {
	Count int                  `bson:"count" json:"count"`
	Users []primitive.ObjectID `bson:"users" json:"-"`
}

// Deal is a time-bounded promotional offer scoped to one restaurant and
// a subset of its locations. Invariant: EndDate never precedes StartDate.
type Deal struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Restaurant          RestaurantRef      `bson:"restaurant" json:"restaurant"`
	Name                string             `bson:"name" json:"name"`
	Description         string             `bson:"description" json:"description"`
	StartDate           time.Time          `bson:"start_date" json:"start_date"`
	EndDate             time.Time          `bson:"end_date" json:"end_date"`
	IsExpired           bool               `bson:"is_expired" json:"is_expired"`
	Locations           []DealLocation     `bson:"locations" json:"locations"`
	Cuisines            []string           `bson:"cuisines" json:"cuisines"`
	DietaryRequirements []string           `bson:"dietary_requirements" json:"dietary_requirements"`
	Views               Engagement         `bson:"views" json:"views"`
	Saves               Engagement         `bson:"saves" json:"saves"`
	CreatedAt           time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updated_at" json:"updatedAt"`
}

// ActiveAt mirrors the active-list filter: a deal still counts against
// the quota and shows in the active view unless it is both flagged
// expired and past its end date.
func (d *Deal) ActiveAt(now time.Time) bool {
	return !d.IsExpired || d.EndDate.After(now)
}
