package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/prismqdev/foodler-backend/api/routes"
	"github.com/prismqdev/foodler-backend/internal/discounts"
	"github.com/prismqdev/foodler-backend/internal/fridge"
	"github.com/prismqdev/foodler-backend/internal/nutrition"
	"github.com/prismqdev/foodler-backend/pkg/config"
	"github.com/prismqdev/foodler-backend/pkg/db"
	"github.com/prismqdev/foodler-backend/pkg/kupi"
	"github.com/prismqdev/foodler-backend/pkg/logger"
	"github.com/prismqdev/foodler-backend/pkg/metrics"
	"github.com/prismqdev/foodler-backend/pkg/migrate"
	"github.com/prismqdev/foodler-backend/pkg/openfoodfacts"
	"github.com/prismqdev/foodler-backend/pkg/usda"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	lookupMetrics := metrics.NewLookupMetrics(registry)

	offClient, err := openfoodfacts.NewClient(cfg.Nutrition, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create open food facts client", err)
		os.Exit(1)
	}

	providers := []nutrition.Provider{offClient}
	if cfg.Nutrition.USDAAPIKey != "" {
		usdaClient, err := usda.NewClient(cfg.Nutrition, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create usda client", err)
			os.Exit(1)
		}
		providers = append(providers, usdaClient)
	}

	aggregator, err := nutrition.NewAggregator(providers, offClient, logg, lookupMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create nutrition aggregator", err)
		os.Exit(1)
	}

	fridgeService, err := fridge.NewService(fridge.NewRepository(dbClient.DB()), dbClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create fridge service", err)
		os.Exit(1)
	}

	kupiClient, err := kupi.NewClient(cfg.Discounts, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create kupi client", err)
		os.Exit(1)
	}

	discountsService, err := discounts.NewService(kupiClient, cfg.Discounts, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create discounts service", err)
		os.Exit(1)
	}

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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, fridgeService, aggregator, discountsService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
