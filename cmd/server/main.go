package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cartapp "storefront/internal/cart/app"
	cartadapter "storefront/internal/cart/infra/adapter"
	cartpg "storefront/internal/cart/infra/postgres"
	catalogapp "storefront/internal/catalog/app"
	catalogpg "storefront/internal/catalog/infra/postgres"
	checkoutapp "storefront/internal/checkout/app"
	checkoutadapter "storefront/internal/checkout/infra/adapter"
	"storefront/internal/httpapi"
	"storefront/internal/memstore"
	orderapp "storefront/internal/order/app"
	orderpg "storefront/internal/order/infra/postgres"
	"storefront/internal/storage"
	storagepg "storefront/internal/storage/postgres"
	"storefront/pkg/config"
	"storefront/pkg/events"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/pkg/postgres"
	"storefront/pkg/shutdown"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "storefront", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	var (
		productRepo catalogapp.ProductRepo
		cartRepo    cartapp.CartRepo
		orderRepo   orderapp.OrderRepo
		tx          storage.TxManager
	)

	if cfg.UsePostgres() {
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

		productRepo = catalogpg.NewProductRepo(db)
		cartRepo = cartpg.NewCartRepo(db)
		orderRepo = orderpg.NewOrderRepo(db)
		tx = storagepg.NewTxManager(db)
	} else {
		log.Warn("no POSTGRES_HOST configured, using in-memory store")
		store := memstore.NewStore()
		productRepo = memstore.NewProducts(store)
		cartRepo = memstore.NewCarts(store)
		orderRepo = memstore.NewOrders(store)
		tx = store
	}

	catalogSvc := catalogapp.NewService(productRepo)
	cartSvc := cartapp.NewService(cartRepo, cartadapter.NewCatalogServiceReader(catalogSvc))
	orderSvc := orderapp.NewService(orderRepo)

	var publisher events.Publisher
	if kp := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.OrderEventTopic); kp != nil {
		publisher = kp
		defer kp.Close()
	}

	checkoutSvc := checkoutapp.NewService(
		checkoutadapter.NewCartServiceStore(cartSvc),
		checkoutadapter.NewCatalogServiceStore(catalogSvc),
		checkoutadapter.NewOrderServiceStore(orderSvc),
		tx,
		checkoutapp.Options{
			Logger:     log,
			Publisher:  publisher,
			Metrics:    metrics.NewCheckoutMetrics(prometheus.DefaultRegisterer),
			Currency:   cfg.Currency,
			MaxRetries: cfg.CheckoutMaxRetries,
		},
	)

	srv := httpapi.NewServer(catalogSvc, cartSvc, orderSvc, checkoutSvc, log)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           srv.Engine(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("http server starting", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}
