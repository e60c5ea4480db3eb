package main

import (
	"context"
	"log"

	"go-catalog-admin/internal/repository"
	"go-catalog-admin/pkg/config"
	"go-catalog-admin/pkg/database"
	"go-catalog-admin/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}
	cfg := config.Load()

	zl, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	// 2. Setup Database
	db, err := database.Connect(cfg.Database, zl)
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	if err := repository.AutoMigrate(db); err != nil {
		zl.Fatal("migration failed", zap.Error(err))
	}

	// 3. Insert defaults into empty lookup tables
	inserted, err := repository.SeedLookups(context.Background(), repository.NewGormStore(db))
	if err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}
	if len(inserted) == 0 {
		zl.Info("lookup tables already populated, nothing to seed")
		return
	}
	for kind, n := range inserted {
		zl.Info("seeded lookup table", zap.String("table", kind.Table()), zap.Int("rows", n))
	}
}
