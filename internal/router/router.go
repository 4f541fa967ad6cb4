package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/bullpull02/foodie-api/internal/auth"
	"github.com/bullpull02/foodie-api/internal/deals"
	"github.com/bullpull02/foodie-api/internal/metrics"
	"github.com/bullpull02/foodie-api/internal/middleware"
	"github.com/bullpull02/foodie-api/internal/restaurant"
)

// Deps carries everything the router wires together.
type Deps struct {
	Auth        *auth.Handler
	Deals       *deals.Handler
	Users       middleware.UserFinder
	Restaurants restaurant.Repository
	Metrics     *metrics.HTTPMetrics
}

// New assembles the engine: CORS, metrics, public endpoints, auth routes
// and the guarded deal routes.
func New(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if d.Metrics != nil {
		r.Use(d.Metrics.Middleware())
		r.GET("/metrics", metrics.Handler())
	}

	r.GET("/", func(c *gin.Context) {
		c.String(200, "Foodie API Running")
	})

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/login", d.Auth.Login)
		authGroup.POST("/confirm/:token", d.Auth.ConfirmEmail)
	}

	// Deal management is reserved for the restaurant's super admin, and
	// only once the application has been accepted.
	dealsGroup := api.Group("/rest/deals")
	dealsGroup.Use(
		middleware.AuthMiddleware(d.Users),
		restaurant.Guard(d.Restaurants, restaurant.RoleSuperAdmin, restaurant.GuardOptions{AcceptedOnly: true}),
	)
	{
		dealsGroup.GET("/active", d.Deals.Active)
		dealsGroup.GET("/expired", d.Deals.Expired)
		dealsGroup.GET("/single/:id", d.Deals.Single)
		dealsGroup.GET("/use-template/:id", d.Deals.UseTemplate)
		dealsGroup.POST("/add", d.Deals.Add)
		dealsGroup.PATCH("/edit/:id", d.Deals.Edit)
		dealsGroup.POST("/delete/:id", d.Deals.Delete)
		dealsGroup.PATCH("/expire/:id", d.Deals.Expire)
	}

	return r
}
