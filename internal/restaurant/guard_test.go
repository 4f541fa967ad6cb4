package restaurant

import (
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bullpull02/foodie-api/internal/auth"
	"github.com/bullpull02/foodie-api/internal/httperr"
)

func confirmedUser(restID primitive.ObjectID, role Role) *auth.User {
	return &auth.User{
		ID:             primitive.NewObjectID(),
		Email:          "test@example.com",
		EmailConfirmed: true,
		Restaurant:     &auth.UserRestaurant{ID: restID, Role: string(role)},
	}
}

func restaurantFor(user *auth.User, role Role, status Status) *Restaurant {
	rest := &Restaurant{
		ID:     user.Restaurant.ID,
		Name:   "Test Kitchen",
		Status: status,
	}
	switch role {
	case RoleSuperAdmin:
		rest.SuperAdmin = user.ID
	case RoleAdmin:
		rest.SuperAdmin = primitive.NewObjectID()
		rest.Admins = []primitive.ObjectID{user.ID}
	case RoleUser:
		rest.SuperAdmin = primitive.NewObjectID()
		rest.Users = []primitive.ObjectID{user.ID}
	}
	return rest
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if want == 0 {
		if err != nil {
			t.Fatalf("expected access granted, got %v", err)
		}
		return
	}
	if err == nil {
		t.Fatalf("expected status %d, got access granted", want)
	}
	httpErr, ok := err.(*httperr.Error)
	if !ok {
		t.Fatalf("expected *httperr.Error, got %T (%v)", err, err)
	}
	if httpErr.Status != want {
		t.Fatalf("expected status %d, got %d (%s)", want, httpErr.Status, httpErr.Message)
	}
}

func TestAuthorizeInvalidRequiredRole(t *testing.T) {
	user := confirmedUser(primitive.NewObjectID(), RoleSuperAdmin)
	rest := restaurantFor(user, RoleSuperAdmin, StatusLive)

	err := Authorize(user, Role("OWNER"), rest, GuardOptions{})
	assertStatus(t, err, http.StatusInternalServerError)
}

func TestAuthorizeUnconfirmedEmailDeniedRegardlessOfRole(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleAdmin, RoleSuperAdmin} {
		user := confirmedUser(primitive.NewObjectID(), role)
		user.EmailConfirmed = false
		rest := restaurantFor(user, role, StatusLive)

		err := Authorize(user, RoleUser, rest, GuardOptions{})
		assertStatus(t, err, http.StatusForbidden)
	}
}

func TestAuthorizeNoRestaurantAssociation(t *testing.T) {
	user := confirmedUser(primitive.NewObjectID(), RoleSuperAdmin)
	user.Restaurant = nil

	err := Authorize(user, RoleUser, nil, GuardOptions{})
	assertStatus(t, err, http.StatusForbidden)
}

func TestAuthorizeNoRole(t *testing.T) {
	user := confirmedUser(primitive.NewObjectID(), Role(""))

	err := Authorize(user, RoleUser, nil, GuardOptions{})
	assertStatus(t, err, http.StatusForbidden)
}

func TestAuthorizeRestaurantNotFound(t *testing.T) {
	user := confirmedUser(primitive.NewObjectID(), RoleSuperAdmin)

	err := Authorize(user, RoleUser, nil, GuardOptions{})
	assertStatus(t, err, http.StatusForbidden)
}

func TestAuthorizeApplicationOnlyStatuses(t *testing.T) {
	cases := []struct {
		status Status
		want   int
	}{
		{StatusApplicationAccepted, http.StatusUnauthorized},
		{StatusApplicationRejected, http.StatusUnauthorized},
		{StatusLive, http.StatusUnauthorized},
		{StatusDisabled, http.StatusUnauthorized},
		{StatusApplicationProcessing, http.StatusUnauthorized},
		{StatusNone, 0},
		{StatusApplicationPending, 0},
	}

	for _, tc := range cases {
		user := confirmedUser(primitive.NewObjectID(), RoleSuperAdmin)
		rest := restaurantFor(user, RoleSuperAdmin, tc.status)

		err := Authorize(user, RoleSuperAdmin, rest, GuardOptions{ApplicationOnly: true})
		assertStatus(t, err, tc.want)
	}
}

func TestAuthorizeAcceptedOnlyStatuses(t *testing.T) {
	cases := []struct {
		status Status
		want   int
	}{
		{StatusNone, http.StatusUnauthorized},
		{StatusApplicationProcessing, http.StatusUnauthorized},
		{StatusApplicationRejected, http.StatusUnauthorized},
		{StatusApplicationPending, http.StatusUnauthorized},
		{StatusApplicationAccepted, 0},
		{StatusLive, 0},
		{StatusDisabled, 0},
	}

	for _, tc := range cases {
		user := confirmedUser(primitive.NewObjectID(), RoleSuperAdmin)
		rest := restaurantFor(user, RoleSuperAdmin, tc.status)

		err := Authorize(user, RoleSuperAdmin, rest, GuardOptions{AcceptedOnly: true})
		assertStatus(t, err, tc.want)
	}
}

func TestAuthorizeRoleHierarchy(t *testing.T) {
	cases := []struct {
		actual   Role
		required Role
		want     int
	}{
		{RoleSuperAdmin, RoleSuperAdmin, 0},
		{RoleSuperAdmin, RoleAdmin, 0},
		{RoleSuperAdmin, RoleUser, 0},
		{RoleAdmin, RoleSuperAdmin, http.StatusForbidden},
		{RoleAdmin, RoleAdmin, 0},
		{RoleAdmin, RoleUser, 0},
		{RoleUser, RoleSuperAdmin, http.StatusForbidden},
		{RoleUser, RoleAdmin, http.StatusForbidden},
		{RoleUser, RoleUser, 0},
	}

	for _, tc := range cases {
		user := confirmedUser(primitive.NewObjectID(), tc.actual)
		rest := restaurantFor(user, tc.actual, StatusLive)

		err := Authorize(user, tc.required, rest, GuardOptions{})
		assertStatus(t, err, tc.want)
	}
}

// A claimed role is not enough: the restaurant's stored sets are the
// source of truth.
func TestAuthorizeClaimedRoleWithoutMembership(t *testing.T) {
	for _, claimed := range []Role{RoleUser, RoleAdmin, RoleSuperAdmin} {
		user := confirmedUser(primitive.NewObjectID(), claimed)
		rest := &Restaurant{
			ID:         user.Restaurant.ID,
			Status:     StatusLive,
			SuperAdmin: primitive.NewObjectID(), // someone else
		}

		err := Authorize(user, RoleUser, rest, GuardOptions{})
		assertStatus(t, err, http.StatusForbidden)
	}
}

// A principal who really is super admin of restaurant A gains nothing on
// a SUPER_ADMIN route for restaurant B: the membership check runs
// against the resolved restaurant.
func TestAuthorizeSuperAdminExactMatch(t *testing.T) {
	user := confirmedUser(primitive.NewObjectID(), RoleSuperAdmin)
	rest := restaurantFor(user, RoleSuperAdmin, StatusLive)
	rest.SuperAdmin = primitive.NewObjectID()

	err := Authorize(user, RoleSuperAdmin, rest, GuardOptions{})
	assertStatus(t, err, http.StatusForbidden)
}
