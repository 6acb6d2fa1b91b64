package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/rahularya002/make-songs/internal/auth"
	"github.com/rahularya002/make-songs/internal/config"
	"github.com/rahularya002/make-songs/internal/database"
	"github.com/rahularya002/make-songs/internal/events"
	"github.com/rahularya002/make-songs/internal/handlers"
	"github.com/rahularya002/make-songs/internal/middleware"
	"github.com/rahularya002/make-songs/internal/repository"
	"github.com/rahularya002/make-songs/internal/server"
	"github.com/rahularya002/make-songs/internal/services"
	"github.com/rahularya002/make-songs/internal/storage"
	"github.com/rahularya002/make-songs/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.App.Env == "development")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Infof("starting make-songs backend in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, logger)
	if err != nil {
		logger.Fatalf("mongo connect: %v", err)
	}

	var limiter *middleware.RateLimiter
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = database.ConnectRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Fatalf("redis connect: %v", err)
		}
		limiter = middleware.NewRateLimiter(rdb, "login_rate", cfg.Redis.LoginLimit, cfg.LoginWindow)
	} else {
		logger.Warn("REDIS_ADDR not set, login rate limiting disabled")
	}

	store, err := storage.NewS3Store(context.Background(), cfg.Storage.Region, cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey)
	if err != nil {
		logger.Fatalf("object store init: %v", err)
	}

	var publisher *events.Publisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Infof("upload events enabled on topic %s", cfg.Kafka.Topic)
	}

	tokens := auth.NewTokenManager(cfg.Session.Secret, cfg.SessionTTL)
	userRepo := repository.NewMongoUserRepo(db, cfg.Mongo.UsersCollection)
	uploadRepo := repository.NewMongoUploadRepo(db, cfg.Mongo.UploadsCollection)
	authSvc := services.NewAuthService(userRepo, tokens, logger)
	uploadSvc := services.NewUploadService(uploadRepo, store, publisher, logger)

	app := server.New(cfg, server.Deps{
		Logger:  logger,
		Tokens:  tokens,
		Auth:    handlers.NewAuthHandler(authSvc, logger),
		Upload:  handlers.NewUploadHandler(uploadSvc, logger),
		Limiter: limiter,
	})

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		logger.Infof("server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatalf("server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown requested")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Errorf("fiber shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		logger.Errorf("mongo disconnect error: %v", err)
	}
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Errorf("redis close error: %v", err)
		}
	}
	if err := publisher.Close(); err != nil {
		logger.Errorf("kafka close error: %v", err)
	}
	logger.Info("shutdown completed")
}
