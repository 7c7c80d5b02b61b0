package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/eurenemendes/ecofeira-backend/api/routes"
	"github.com/eurenemendes/ecofeira-backend/internal/catalog"
	"github.com/eurenemendes/ecofeira-backend/internal/comparison"
	"github.com/eurenemendes/ecofeira-backend/internal/content"
	"github.com/eurenemendes/ecofeira-backend/internal/favorites"
	"github.com/eurenemendes/ecofeira-backend/internal/shoppinglist"
	"github.com/eurenemendes/ecofeira-backend/internal/stores"
	"github.com/eurenemendes/ecofeira-backend/internal/strategy"
	"github.com/eurenemendes/ecofeira-backend/pkg/config"
	"github.com/eurenemendes/ecofeira-backend/pkg/db"
	"github.com/eurenemendes/ecofeira-backend/pkg/gemini"
	"github.com/eurenemendes/ecofeira-backend/pkg/logger"
	"github.com/eurenemendes/ecofeira-backend/pkg/metrics"
	"github.com/eurenemendes/ecofeira-backend/pkg/migrate"
	"github.com/eurenemendes/ecofeira-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

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

	gormDB := dbClient.DB()
	catalogRepo := catalog.NewRepository(gormDB)
	storeRepo := stores.NewRepository(gormDB)
	contentRepo := content.NewRepository(gormDB)
	listRepo := shoppinglist.NewRepository(gormDB)
	favoritesRepo := favorites.NewRepository(gormDB)

	catalogService, err := catalog.NewService(catalog.ServiceParams{Repo: catalogRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}
	storeService, err := stores.NewService(stores.ServiceParams{Repo: storeRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}
	contentService, err := content.NewService(content.ServiceParams{Repo: contentRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}
	listService, err := shoppinglist.NewService(shoppinglist.ServiceParams{
		Repo:     listRepo,
		Products: catalogRepo,
		Cache:    redisClient,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create shopping list service", err)
		os.Exit(1)
	}
	favoritesService, err := favorites.NewService(favorites.ServiceParams{
		Repo:     favoritesRepo,
		Products: catalogRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create favorites service", err)
		os.Exit(1)
	}
	comparisonService, err := comparison.NewService(comparison.ServiceParams{
		ListSource:    listService,
		CatalogSource: catalogRepo,
		StoreSource:   storeRepo,
		Cache:         redisClient,
		Logger:        logg,
		Config:        cfg.Comparison,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create comparison service", err)
		os.Exit(1)
	}
	strategyService, err := strategy.NewService(strategy.ServiceParams{
		Comparisons: comparisonService,
		Generator:   gemini.New(cfg.Gemini),
		Logger:      logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create strategy service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.RouterParams{
			Config:            cfg,
			Logger:            logg,
			DB:                dbClient,
			Redis:             redisClient,
			Metrics:           httpMetrics,
			Gatherer:          registry,
			CatalogService:    catalogService,
			StoreService:      storeService,
			ContentService:    contentService,
			ListService:       listService,
			FavoritesService:  favoritesService,
			ComparisonService: comparisonService,
			StrategyService:   strategyService,
		}),
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-runCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "error during server shutdown", err)
		}
	}
}
