package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"staffhub/internal/database"
	"staffhub/internal/repository"
)

const (
	revokedRetention = 30 * 24 * time.Hour
	attemptRetention = 90 * 24 * time.Hour
)

func main() {
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()
	now := time.Now()

	refreshPurged, err := repository.NewRefreshTokenRepository(db).PurgeStale(ctx, now, revokedRetention)
	if err != nil {
		log.Fatalf("cleanup refresh_tokens failed: %v", err)
	}

	resetPurged, err := repository.NewPasswordResetRepository(db).PurgeStale(ctx, now)
	if err != nil {
		log.Fatalf("cleanup password_reset_tokens failed: %v", err)
	}

	attemptsPurged, err := repository.NewLoginAttemptRepository(db).PurgeOlderThan(ctx, now.Add(-attemptRetention))
	if err != nil {
		log.Fatalf("cleanup login_attempts failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d password_reset_tokens=%d login_attempts=%d",
		refreshPurged, resetPurged, attemptsPurged)
}
