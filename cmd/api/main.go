package main

import (
	"context"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/asclegal/crm-api/internal/auth"
	"github.com/asclegal/crm-api/internal/config"
	"github.com/asclegal/crm-api/internal/handlers"
	"github.com/asclegal/crm-api/internal/logger"
	"github.com/asclegal/crm-api/internal/router"
	"github.com/asclegal/crm-api/internal/services"
	"github.com/asclegal/crm-api/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		logger.New(0).Fatal("failed to load config", "error", err)
	}

	log := logger.New(cfg.LogLevel)
	if cfg.JWT.Secret == "devsecret" {
		log.Warn("JWT_SECRET is not set, using the development default")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.Mongo.Database)
	log.Info("connected to MongoDB", "database", cfg.Mongo.Database)

	users := store.NewMongoUserStore(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal("failed to ensure indexes", "error", err)
	}

	issuer := auth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	authSvc := services.NewAuth(users, issuer, log, cfg.BcryptCost)
	customerSvc := services.NewCustomers(users)
	h := handlers.NewHandler(authSvc, customerSvc, log)

	r := router.New(h, issuer, log, cfg.CORSOrigins)

	log.Info("starting server", "port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
