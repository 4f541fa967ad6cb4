package restaurant

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/bullpull02/foodie-api/internal/auth"
	"github.com/bullpull02/foodie-api/internal/httperr"
	"github.com/bullpull02/foodie-api/internal/middleware"
)

const restaurantKey = "restaurant"

// GuardOptions narrows which restaurant lifecycle states may pass the
// guard. ApplicationOnly admits only restaurants still in the raw or
// pending application phase; AcceptedOnly admits only restaurants whose
// application has been accepted.
type GuardOptions struct {
	AcceptedOnly    bool
	ApplicationOnly bool
}

// Authorize decides whether the principal may act on the restaurant at
// the required role. Checks run in a fixed order and the first violation
// wins. rest may be nil, meaning the lookup found nothing.
//
// Privilege is cumulative downward — each tier satisfies every lower
// requirement — but membership is verified against the restaurant
// document for the principal's actual tier, so a claimed role alone is
// never enough. A SUPER_ADMIN requirement admits only the principal the
// restaurant names as super_admin.
func Authorize(user *auth.User, required Role, rest *Restaurant, opts GuardOptions) error {
	if !required.Valid() {
		// Programming error, not a user denial.
		return httperr.Internal("guard expects a restaurant role as the argument")
	}

	if !user.EmailConfirmed {
		return httperr.Forbidden("Access denied - Please confirm your email before accessing these resources")
	}

	if user.Restaurant == nil || user.Restaurant.ID.IsZero() {
		return httperr.Forbidden("Access denied - User has no restaurant associated with them")
	}

	claimed := Role(user.Restaurant.Role)
	if claimed == "" {
		return httperr.Forbidden("Access denied - User has no role on this restaurant")
	}

	if rest == nil {
		return httperr.Forbidden("Access denied - restaurant not found")
	}

	if opts.ApplicationOnly {
		switch rest.Status {
		case StatusApplicationAccepted,
			StatusApplicationRejected,
			StatusLive,
			StatusDisabled,
			StatusApplicationProcessing:
			return httperr.Unauthorized("Unable to access these resources")
		}
	}

	if opts.AcceptedOnly {
		switch rest.Status {
		case StatusNone,
			StatusApplicationProcessing,
			StatusApplicationRejected,
			StatusApplicationPending:
			return httperr.Unauthorized("Unable to access these resources")
		}
	}

	if roleRank[claimed] < roleRank[required] || !memberOfTier(rest, claimed, user) {
		return httperr.Forbidden("Access denied - users permissions can't access this route")
	}

	return nil
}

// memberOfTier verifies the claimed tier against the restaurant's stored
// membership sets.
func memberOfTier(rest *Restaurant, claimed Role, user *auth.User) bool {
	switch claimed {
	case RoleSuperAdmin:
		return rest.SuperAdmin == user.ID
	case RoleAdmin:
		return rest.isAdmin(user.ID)
	case RoleUser:
		return rest.isUser(user.ID)
	default:
		return false
	}
}

// Guard is the route middleware form of Authorize: it resolves the
// principal's restaurant (super_admin included) and, on success, attaches
// it to the request context for the handler.
func Guard(repo Repository, required Role, opts GuardOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			httperr.Abort(c, httperr.Unauthorized("unauthorized"))
			return
		}

		var rest *Restaurant
		if user.Restaurant != nil && !user.Restaurant.ID.IsZero() {
			found, err := repo.FindByID(c.Request.Context(), user.Restaurant.ID)
			if err != nil && !errors.Is(err, ErrRestaurantNotFound) {
				httperr.Abort(c, err)
				return
			}
			rest = found
		}

		if err := Authorize(user, required, rest, opts); err != nil {
			httperr.Abort(c, err)
			return
		}

		c.Set(restaurantKey, rest)
		c.Next()
	}
}

// FromContext returns the restaurant attached by Guard.
func FromContext(c *gin.Context) (*Restaurant, bool) {
	v, exists := c.Get(restaurantKey)
	if !exists {
		return nil, false
	}
	rest, ok := v.(*Restaurant)
	return rest, ok
}

// SetContext attaches a restaurant directly; used by handler tests.
func SetContext(c *gin.Context, rest *Restaurant) {
	c.Set(restaurantKey, rest)
}
