package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/cache2k25/registration-backend/internal/config"
	"github.com/cache2k25/registration-backend/internal/database"
	"github.com/cache2k25/registration-backend/internal/handler"
	"github.com/cache2k25/registration-backend/internal/middleware"
	"github.com/cache2k25/registration-backend/internal/queue"
	"github.com/cache2k25/registration-backend/internal/repository"
	"github.com/cache2k25/registration-backend/internal/router"
	queuepublisher "github.com/cache2k25/registration-backend/internal/service"
	"github.com/cache2k25/registration-backend/internal/storage"
	"github.com/cache2k25/registration-backend/internal/ticket"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	var uploader storage.ProofUploader
	if cfg.S3Endpoint != "" {
		up, err := storage.NewMinioUploader(cfg.S3Endpoint, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3UseSSL)
		if err != nil {
			log.Fatalf("uploader: %v", err)
		}
		uploader = up
	} else {
		log.Print("S3_ENDPOINT not set; payment-proof uploads disabled")
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable; rate limiting and listing cache disabled")
	}
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	regRepo := repository.NewRegistrationRepo(db)
	adminRepo := repository.NewAdminRepo(db)
	events := queuepublisher.New(cfg.AMQPURL)

	regHandler := handler.NewRegistrationHandler(regRepo, uploader, ticket.LatexRenderer{}, events, cache)
	authHandler := handler.NewAuthHandler(cfg, adminRepo)

	go func() {
		if err := queue.StartAuditConsumer(cfg.AMQPURL); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.Register(e, cfg, regHandler, authHandler, rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
