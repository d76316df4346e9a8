package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/storefront/cart/internal/config"
	"github.com/storefront/cart/internal/events"
	"github.com/storefront/cart/internal/platform/logger"
	"github.com/storefront/cart/internal/platform/metrics"
	"github.com/storefront/cart/internal/port"
	"github.com/storefront/cart/internal/repository"
	"github.com/storefront/cart/internal/server"
	"github.com/storefront/cart/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/currency"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}

	zlog := logger.New(logger.Config{Level: cfg.Logger.Level, Encoding: cfg.Logger.Encoding})
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("service stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	var publisher port.Publisher = events.NoopPublisher{}
	if cfg.NATS.URL != "" {
		conn, err := events.NewConnection(cfg.NATS.URL)
		if err != nil {
			return err
		}
		defer conn.Close()

		publisher, err = events.NewNATSPublisher(conn)
		if err != nil {
			return err
		}
	}

	taxRate, err := decimal.NewFromString(cfg.Pricing.TaxRate)
	if err != nil {
		return err
	}
	storeCurrency, err := currency.ParseISO(cfg.Pricing.Currency)
	if err != nil {
		return err
	}

	m := metrics.New("storefront")

	items := repository.NewCartItemStore(pool)
	carts := repository.NewCartStore(pool)
	catalog := repository.NewCatalog(pool)

	pricer := service.NewPricer(taxRate, storeCurrency)
	cartService := service.NewCartService(items, carts, catalog, publisher, m, zlog, cfg.Cart.MergeRetries)
	viewer := service.NewCartViewer(items, carts, catalog, pricer)
	products := service.NewProductService(catalog, pricer)

	cartHandler := server.NewCartHandler(cartService, viewer, products, zlog, cfg.HTTP.RequestTimeout)
	productHandler := server.NewProductHandler(products, zlog, cfg.HTTP.RequestTimeout)

	apiServer := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: server.NewRouter(cartHandler, productHandler, m),
	}
	metricsServer := &http.Server{
		Addr:    cfg.Metrics.Addr,
		Handler: m.Handler(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zlog.Info("http server starting", zap.String("addr", cfg.HTTP.Addr))
		if err := apiServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		zlog.Info("metrics server starting", zap.String("addr", cfg.Metrics.Addr))
		if err := metricsServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zlog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		return errors.Join(
			apiServer.Shutdown(shutdownCtx),
			metricsServer.Shutdown(shutdownCtx),
		)
	})

	return g.Wait()
}
