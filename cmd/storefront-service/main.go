package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/mercadia/storefront/internal/cart"
	"github.com/mercadia/storefront/internal/catalog"
	"github.com/mercadia/storefront/internal/config"
	"github.com/mercadia/storefront/internal/order"
	"github.com/mercadia/storefront/internal/report"
	"github.com/mercadia/storefront/internal/storage"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "storefront").Logger()

	cfg := config.Load()

	if err := storage.Migrate(cfg.MigrationsDir, cfg.PostgresDSN); err != nil {
		logger.Fatal().Err(err).Msg("migrations failed")
	}

	store, err := storage.Connect(context.Background(), cfg.PostgresDSN)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer store.Close()

	catalogRepo := catalog.NewPGRepo(store)
	router := newRouter(&logger, repos{
		products:   catalogRepo,
		categories: catalogRepo,
		carts:      cart.NewPGRepo(store),
		orders:     order.NewPGEngine(store),
		reports:    report.NewPGRepo(store),
	})

	logger.Info().Str("addr", cfg.ServerAddr).Msg("storefront-service listening")
	if err := router.Run(cfg.ServerAddr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
