package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"
	"strings"

	"resume-roaster/internal/shared/config"
	"resume-roaster/internal/shared/storage/db"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Printf("DATABASE_URL is required")
		os.Exit(1)
	}

	sqlDB, err := db.Open(ctx, cfg.DatabaseURL, db.CommandPool.WithConfig(cfg))
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	version, err := db.Migrate(ctx, sqlDB)
	if err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	log.Printf("migrations applied; schema version %d", version)
}
