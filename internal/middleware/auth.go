package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/bullpull02/foodie-api/internal/auth"
)

const principalKey = "principal"

// UserFinder is the slice of the user repository the middleware needs.
type UserFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*auth.User, error)
}

// AuthMiddleware validates the bearer token and loads the principal from
// the store, attaching it to the request context for downstream guards
// and handlers.
func AuthMiddleware(users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing authorization header"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid authorization format, use 'Bearer <token>'"})
			return
		}

		userID, _, err := auth.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token: " + err.Error()})
			return
		}

		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token subject"})
			return
		}

		user, err := users.FindByID(c.Request.Context(), oid)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unknown user"})
			return
		}

		c.Set(principalKey, user)
		c.Next()
	}
}

// CurrentUser returns the principal attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*auth.User, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*auth.User)
	return user, ok
}

// SetCurrentUser attaches a principal directly; used by tests that
// bypass token validation.
func SetCurrentUser(c *gin.Context, user *auth.User) {
	c.Set(principalKey, user)
}
