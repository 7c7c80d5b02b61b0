package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"

	"github.com/eurenemendes/ecofeira-backend/internal/importer"
	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	"github.com/eurenemendes/ecofeira-backend/pkg/db"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
	"github.com/eurenemendes/ecofeira-backend/pkg/redis"
	"github.com/eurenemendes/ecofeira-backend/pkg/sheets"
)

// Fetches the published spreadsheet tabs and replaces the catalog in one
// transaction. Meant to run as a scheduled one-shot job.
func main() {
	logg := logger.New(logger.Options{ServiceName: "import"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "import",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	svc, err := importer.NewService(importer.ServiceParams{
		Sheets: sheets.New(cfg.Sheets),
		Writer: importer.NewRepository(dbClient),
		Bumper: redisClient,
		Logger: logg,
		Config: cfg.Sheets,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create importer service", err)
		os.Exit(1)
	}

	ctx := logg.WithField(context.Background(), "env", cfg.App.Env)
	summary, err := svc.ImportAll(ctx)
	if err != nil {
		logg.Error(ctx, "catalog import failed", err)
		os.Exit(1)
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"products":    summary.Products,
		"stores":      summary.Stores,
		"banners":     summary.Banners,
		"suggestions": summary.Suggestions,
		"row_errors":  len(summary.RowErrors),
	})
	logg.Info(ctx, "catalog import complete")
}
