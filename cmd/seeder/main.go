package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Skotchmaster/printshop/internal/repo"
	"github.com/Skotchmaster/printshop/internal/seed"
	"github.com/Skotchmaster/printshop/pkg/config"
	pkgdb "github.com/Skotchmaster/printshop/pkg/db"
	"github.com/Skotchmaster/printshop/pkg/logging"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not loaded: %v, using process environment", err)
	}

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")

	logger := logging.New(cfg.LogLevel, "").With("service", "seeder")
	zap.ReplaceGlobals(logger.Desugar())
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := pkgdb.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalw("db_open_error", "error", err)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	r := &repo.GormRepo{DB: db}
	if err := r.Migrate(ctx); err != nil {
		logger.Fatalw("db_migrate_error", "error", err)
	}

	n, err := seed.Run(ctx, r)
	if err != nil {
		logger.Fatalw("seed_error", "error", err)
	}
	logger.Infow("seed_done", "products", n, "admin", seed.AdminEmail)
}
