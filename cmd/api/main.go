package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"jobportal/internal/api"
	"jobportal/internal/auth"
	"jobportal/internal/config"
	"jobportal/internal/database"
	"jobportal/internal/uploads"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	log.Printf("api bootstrapped with db host=%s port=%d db=%s sslmode=%s",
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.Name,
		cfg.Database.SSLMode,
	)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	log.Printf("database connection ready")

	if err := db.AutoMigrate(&database.User{}); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	log.Printf("database migrated")

	authService, err := auth.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	uploader, err := uploads.NewService(cfg.Media)
	if err != nil {
		log.Fatalf("init media uploads: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, db, authService, uploader, redisClient, logger, cfg.API.CookieDomain, cfg.Auth.InternalSecret)

	address := fmt.Sprintf(":%d", cfg.API.Port)
	log.Printf("api listening on %s", address)

	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
