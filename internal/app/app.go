package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	httpapp "github.com/tumbleweedd/pineapple_store/storefront_service/internal/app/http"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/cache_impl"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/config"
	storefront_http "github.com/tumbleweedd/pineapple_store/storefront_service/internal/delivery/http"
	orderCreateHandler "github.com/tumbleweedd/pineapple_store/storefront_service/internal/delivery/http/order/create"
	productListHandler "github.com/tumbleweedd/pineapple_store/storefront_service/internal/delivery/http/product/list"
	tunnelHandler "github.com/tumbleweedd/pineapple_store/storefront_service/internal/delivery/http/tunnel/forward"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/metrics"
	postgresProducts "github.com/tumbleweedd/pineapple_store/storefront_service/internal/repository/product/postgres"
	restProducts "github.com/tumbleweedd/pineapple_store/storefront_service/internal/repository/product/rest"
	orderCreationService "github.com/tumbleweedd/pineapple_store/storefront_service/internal/services/order/create"
	"github.com/tumbleweedd/pineapple_store/storefront_service/internal/services/product/images"
	productListService "github.com/tumbleweedd/pineapple_store/storefront_service/internal/services/product/list"
	tunnelService "github.com/tumbleweedd/pineapple_store/storefront_service/internal/services/tunnel/forward"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/brokers/kafka/producer"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/databases/postgres"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/logger"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/supabase"
	"github.com/tumbleweedd/pineapple_store/storefront_service/pkg/tracking"
	"golang.org/x/sync/errgroup"
)

func Run() {
	cfg := config.InitConfig()

	log := logger.SetupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, &cfg); err != nil {
		log.Error("application stopped with error", logger.Err(err))
		panic(err)
	}

	log.Info("application stopped")
}

func run(ctx context.Context, log *logger.SlogLogger, cfg *config.Config) error {
	tracker, err := tracking.New(tracking.Config{
		DSN:              cfg.Sentry.DSN,
		Environment:      cfg.Env,
		TracesSampleRate: cfg.Sentry.TracesSampleRate,
	})
	if err != nil {
		return err
	}
	defer tracker.Flush(cfg.HTTP.ShutdownTimeout)
	log.Info("error tracking configured", logger.Bool("enabled", tracker.Enabled()))

	appMetrics := metrics.New()

	supabaseClient, err := setupSupabase(cfg)
	if err != nil {
		return err
	}

	db, err := setupDatabase(ctx, log, cfg)
	if err != nil {
		return err
	}
	if db != nil {
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("failed to close postgres", logger.Err(err))
				return
			}
			log.Info("postgres db closed")
		}()
	}

	publisher, err := setupProducer(log, cfg)
	if err != nil {
		return err
	}
	if publisher != nil {
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Error("failed to close kafka producer", logger.Err(err))
			}
		}()
	}

	products := productListService.New(
		log,
		setupCatalog(log, cfg, db, supabaseClient),
		setupImageResolver(log, cfg, supabaseClient),
		appMetrics,
	)

	var orderFunction orderCreationService.OrderFunction = unconfiguredOrderFunction{}
	if supabaseClient != nil {
		orderFunction = supabaseClient
	}

	var eventPublisher orderCreationService.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}

	orders := orderCreationService.New(
		log,
		orderFunction,
		cfg.Supabase.OrderFunction,
		tracker,
		tracker,
		eventPublisher,
		appMetrics,
	)

	tunnel := tunnelService.New(
		log,
		&http.Client{Timeout: cfg.Tunnel.Timeout},
		tunnelService.NewDestination(cfg.Tunnel.Host, cfg.Tunnel.ProjectIDs),
		tracker,
		appMetrics,
	)

	handler := storefront_http.NewHandler(
		log,
		storefront_http.Routes{
			Products: productListHandler.NewHandler(log, products).List,
			Orders:   orderCreateHandler.NewHandler(log, orders).Create,
			Tunnel:   tunnelHandler.NewHandler(log, tunnel, cfg.Tunnel.MaxBodyBytes).Forward,
		},
		tracker,
		appMetrics,
		storefront_http.NewRateLimiter(log, cfg.Tunnel.RateLimit, cfg.Tunnel.Burst),
	)

	httpServer := httpapp.NewApp(log, handler.InitRoutes(), &cfg.HTTP)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(httpServer.Run)

	g.Go(func() error {
		<-gCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown http server: %w", err)
		}

		log.Info("http server stopped")

		return nil
	})

	return g.Wait()
}

func setupSupabase(cfg *config.Config) (*supabase.Client, error) {
	if !cfg.Supabase.Enabled() {
		return nil, nil
	}

	return supabase.New(supabase.Config{
		URL:        cfg.Supabase.URL,
		ServiceKey: cfg.Supabase.ServiceKey,
		Timeout:    cfg.Supabase.Timeout,
	}, nil)
}

func setupDatabase(ctx context.Context, log logger.Logger, cfg *config.Config) (*postgres.PgDB, error) {
	if cfg.Postgres.DSN == "" {
		return nil, nil
	}

	db, err := postgres.NewPostgresDB(ctx, log, cfg.Postgres.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	return db, nil
}

func setupProducer(log logger.Logger, cfg *config.Config) (*producer.Producer, error) {
	if len(cfg.Kafka.BrokerList) == 0 {
		log.Info("kafka brokers not configured, order events disabled")
		return nil, nil
	}

	p, err := producer.NewProducer(log, cfg.Kafka.BrokerList, cfg.Kafka.OrderEventTopic)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return p, nil
}

// setupCatalog prefers a direct database connection over the REST API.
// Without either the product source serves the fallback list only.
func setupCatalog(log logger.Logger, cfg *config.Config, db *postgres.PgDB, client *supabase.Client) productListService.Catalog {
	switch {
	case db != nil:
		log.Info("product catalog: postgres")
		return postgresProducts.NewProductRepository(log, db.GetDB())
	case client != nil:
		log.Info("product catalog: supabase rest")
		return restProducts.NewProductRepository(log, client, cfg.Supabase.ProductsTable)
	default:
		log.Warn("product catalog not configured, serving fallback products")
		return nil
	}
}

func setupImageResolver(log logger.Logger, cfg *config.Config, client *supabase.Client) *images.Resolver {
	cache := cache_impl.NewExpirableURLCache(cfg.Cache.ImageURLSize, cfg.Cache.ImageURLTTL, log)

	if client == nil {
		return images.New(log, nil, cache, cfg.Supabase.ImageBucket, cfg.Supabase.ImagePrefix)
	}

	return images.New(log, client, cache, cfg.Supabase.ImageBucket, cfg.Supabase.ImagePrefix)
}

var errOrderFunctionUnconfigured = errors.New("order function is not configured")

// unconfiguredOrderFunction fails every call. Used when Supabase credentials are absent.
type unconfiguredOrderFunction struct{}

func (unconfiguredOrderFunction) InvokeFunction(context.Context, string, []byte, http.Header) (*supabase.FunctionResponse, error) {
	return nil, errOrderFunctionUnconfigured
}
