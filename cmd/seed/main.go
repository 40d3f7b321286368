// Command seed loads a small set of sample products so the API has something
// to sell during local development.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	catalogapp "storefront/internal/catalog/app"
	catalogpg "storefront/internal/catalog/infra/postgres"
	"storefront/pkg/config"
	"storefront/pkg/logger"
	"storefront/pkg/postgres"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront-seed", Env: cfg.AppEnv, Level: cfg.LogLevel})

	if !cfg.UsePostgres() {
		log.Error("POSTGRES_HOST is required for seeding")
		os.Exit(1)
	}

	db, err := postgres.Open(postgres.Config{
		Host: cfg.PostgresHost,
		Port: cfg.PostgresPort,
		User: cfg.PostgresUser,
		Pass: cfg.PostgresPass,
		DB:   cfg.PostgresDB,
	})
	if err != nil {
		log.Error("db open failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer db.Close()

	svc := catalogapp.NewService(catalogpg.NewProductRepo(db))

	samples := []catalogapp.CreateProductInput{
		{Name: "Wireless Mouse", Description: "2.4GHz wireless mouse with USB receiver", Brand: "Logi", Currency: cfg.Currency, Amount: 2499, Stock: 120},
		{Name: "Mechanical Keyboard", Description: "Tenkeyless board with brown switches", Brand: "Keychron", Currency: cfg.Currency, Amount: 8999, Stock: 45},
		{Name: "USB-C Hub", Description: "7-in-1 hub with HDMI and card reader", Brand: "Anker", Currency: cfg.Currency, Amount: 3999, Stock: 80},
		{Name: "Laptop Stand", Description: "Adjustable aluminium stand", Brand: "Rain", Currency: cfg.Currency, Amount: 4500, Stock: 60},
		{Name: "Webcam 1080p", Description: "Full HD webcam with privacy shutter", Brand: "Logi", Currency: cfg.Currency, Amount: 5999, Stock: 35},
		{Name: "Desk Mat", Description: "900x400mm stitched edge desk mat", Brand: "Glorious", Currency: cfg.Currency, Amount: 1999, Stock: 200},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, in := range samples {
		p, err := svc.CreateProduct(ctx, in)
		if err != nil {
			log.Error("seed product failed", slog.String("name", in.Name), slog.Any("err", err))
			os.Exit(1)
		}
		log.Info("seeded product", slog.String("id", p.ID), slog.String("name", p.Name))
	}

	log.Info("seed complete", slog.Int("count", len(samples)))
}
