package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"petition-backend/internal/config"
	"petition-backend/internal/server"
	"petition-backend/internal/storage"
)

func main() {
	// Load env if it exists
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	postgres, err := storage.NewPostgres(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer postgres.Close()

	if err := postgres.AutoMigrate(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Connected to database successfully")

	redisClient, err := storage.NewRedis(
		cfg.Redis.GetRedisAddr(),
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err != nil {
		// Rate-limit buckets must be shared across instances in production
		if cfg.Server.Environment == "production" {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		log.Printf("Redis unavailable, falling back to in-memory rate limiter: %v", err)
		redisClient = nil
	} else {
		defer redisClient.Close()
		log.Println("Connected to redis successfully")
	}

	srv := server.New(cfg, redisClient, postgres)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := srv.SeedAdmin(seedCtx); err != nil {
		log.Fatalf("Failed to seed admin account: %v", err)
	}
	cancelSeed()

	go func() {
		addr := ":" + cfg.Server.Port
		if err := srv.Run(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
