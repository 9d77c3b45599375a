package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/nikolayk812/caja-isv/internal/api"
	"github.com/nikolayk812/caja-isv/internal/cache"
	"github.com/nikolayk812/caja-isv/internal/config"
	"github.com/nikolayk812/caja-isv/internal/health"
	"github.com/nikolayk812/caja-isv/internal/invoice"
	"github.com/nikolayk812/caja-isv/internal/migrations"
	"github.com/nikolayk812/caja-isv/internal/obs"
	"github.com/nikolayk812/caja-isv/internal/port"
	"github.com/nikolayk812/caja-isv/internal/repository"
	"github.com/nikolayk812/caja-isv/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := obs.NewLogger(os.Stdout, cfg.LogFormat, cfg.LogLevel).With().Str("env", cfg.AppEnv).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	if cfg.MigrateOnStart {
		if err := migrations.Up(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("apply migrations")
		}
		logger.Info().Msg("migrations applied")
	}

	pool, err := connectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	defer pool.Close()

	var (
		redisClient  redis.UniversalClient
		productCache port.ProductCache
	)
	if cfg.RedisURL != "" {
		client, err := connectRedis(ctx, cfg.RedisURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("connect redis")
		}
		defer func() {
			if err := client.Close(); err != nil {
				logger.Error().Err(err).Msg("close redis")
			}
		}()
		redisClient = client
		productCache = cache.NewRedisProductCache(client, cfg.ProductCacheTTL)
	} else {
		logger.Warn().Msg("REDIS_URL not set, product cache disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := obs.NewHTTPMetrics(cfg.MetricsNamespace, registry)
	salesMetrics := obs.NewSalesMetrics(cfg.MetricsNamespace, registry)

	saleRepo := repository.NewSale(pool)
	catalog := service.NewCatalog(service.CatalogConfig{
		Products: repository.NewProduct(pool),
		Cache:    productCache,
		Metrics:  salesMetrics,
		Logger:   logger,
	})
	sales := service.NewSales(service.SalesConfig{
		Sales:    saleRepo,
		Catalog:  catalog,
		Metrics:  salesMetrics,
		Logger:   logger,
		Location: cfg.Location,
	})

	handler := api.NewHandler(api.HandlerConfig{
		Catalog:   catalog,
		Customers: service.NewCustomers(repository.NewCustomer(pool)),
		Sales:     sales,
		Invoices:  service.NewInvoices(saleRepo, invoice.NewRenderer(cfg.Company)),
		Logger:    logger,
	})

	router := api.NewRouter(api.RouterConfig{
		Handler: handler,
		Health: health.Handler{
			Checker:      health.Deps{DB: pool, Redis: redisClient},
			DBTimeout:    2 * time.Second,
			RedisTimeout: time.Second,
		},
		Logger:   logger,
		Metrics:  httpMetrics,
		Gatherer: registry,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown server")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited unexpectedly")
	}
	logger.Info().Msg("server stopped")
}

func connectDB(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "caja-api"

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

func connectRedis(ctx context.Context, redisURL string, logger zerolog.Logger) (*redis.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)
	if err := redisotel.InstrumentTracing(client); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
