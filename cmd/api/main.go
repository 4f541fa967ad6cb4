package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/bullpull02/foodie-api/internal/auth"
	"github.com/bullpull02/foodie-api/internal/config"
	"github.com/bullpull02/foodie-api/internal/db"
	"github.com/bullpull02/foodie-api/internal/deals"
	"github.com/bullpull02/foodie-api/internal/logger"
	"github.com/bullpull02/foodie-api/internal/metrics"
	"github.com/bullpull02/foodie-api/internal/restaurant"
	"github.com/bullpull02/foodie-api/internal/router"
)

func main() {

	// ───────────────────────── CONFIG ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Server.Env); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	zl := logger.L()

	// ───────────────────────── DB ─────────────────────────
	mdb, err := db.Connect(context.Background(), cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		zl.Fatal("mongo connection failed", zap.Error(err))
	}
	defer func() {
		_ = db.Disconnect(context.Background(), mdb)
	}()
	zl.Info("connected to mongo", zap.String("database", cfg.Mongo.Database))

	// ───────────────────────── REPOS ─────────────────────────
	userRepo := auth.NewMongoUserRepository(mdb)
	restaurantRepo := restaurant.NewMongoRepository(mdb)
	dealRepo := deals.NewMongoRepository(mdb)

	// ───────────────────────── SERVICES ─────────────────────────
	authService := auth.NewService(userRepo, cfg.JWT.ExpirationHours)
	dealService := deals.NewService(dealRepo, cfg.Deals.PerLocation)

	// ───────────────────────── HANDLERS ─────────────────────────
	authHandler := auth.NewHandler(authService)
	dealHandler := deals.NewHandler(dealService)

	// ───────────────────────── SWEEPER ─────────────────────────
	sweeper := deals.NewSweeper(dealRepo, cfg.Deals.SweepSpec, zl)
	if err := sweeper.Start(); err != nil {
		zl.Fatal("sweeper failed to start", zap.Error(err))
	}
	defer sweeper.Stop()

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.New(router.Deps{
		Auth:        authHandler,
		Deals:       dealHandler,
		Users:       userRepo,
		Restaurants: restaurantRepo,
		Metrics:     metrics.NewHTTPMetrics("foodie-api"),
	})

	// ───────────────────────── START ─────────────────────────
	zl.Info("Foodie API running", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
