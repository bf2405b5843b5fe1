package container

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/hkmoon/bookcheck/internal/analytics"
	analyticsstore "github.com/hkmoon/bookcheck/internal/analytics/store"
	"github.com/hkmoon/bookcheck/internal/availability"
	"github.com/hkmoon/bookcheck/internal/cache"
	"github.com/hkmoon/bookcheck/internal/handlers"
	"github.com/hkmoon/bookcheck/internal/health"
	"github.com/hkmoon/bookcheck/internal/library"
	"github.com/hkmoon/bookcheck/internal/middleware"
	"github.com/hkmoon/bookcheck/internal/ratelimit"
	"github.com/hkmoon/bookcheck/internal/search"
	"github.com/hkmoon/bookcheck/internal/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		cfg := zap.NewProductionConfig()
		if opts.LogFormat == "console" {
			cfg = zap.NewDevelopmentConfig()
		}

		return cfg.Build()
	})
}

// RedisPackage provides the redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		opts := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: opts.RedisAddr,
		}), nil
	})
}

// LibraryPackage provides the library index loader.
func LibraryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*library.Loader, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		return library.NewLoader(opts.LibraryDataset, logger), nil
	})
}

// CachePackage provides the TTL response cache store.
func CachePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (cache.Store, error) {
		opts := do.MustInvoke[*Options](i)

		if opts.Backend == BackendRedis {
			return store.NewCacheRedisStore(do.MustInvoke[*redis.Client](i)), nil
		}

		return store.NewCacheMemoryStore(), nil
	})
}

// RateLimitPackage provides the sliding-window rate limiter.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Limiter, error) {
		opts := do.MustInvoke[*Options](i)

		var limitStore ratelimit.Store = store.NewRateLimitMemoryStore()
		if opts.Backend == BackendRedis {
			limitStore = store.NewRateLimitRedisStore(do.MustInvoke[*redis.Client](i))
		}

		window := time.Duration(opts.RateWindowSecs) * time.Second

		return ratelimit.NewSlidingWindowLimiter(limitStore, opts.RateLimit, window), nil
	})
}

// ProvidersPackage provides the external catalog and availability clients.
func ProvidersPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (search.Searcher, error) {
		opts := do.MustInvoke[*Options](i)

		return search.NewClient(opts.SearchURL, opts.SearchKey), nil
	})

	do.Provide(injector, func(i *do.Injector) (*availability.Aggregator, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		checker := availability.NewClient(opts.CheckURL, opts.CheckKey)

		return availability.NewAggregator(checker, logger), nil
	})
}

// PublisherGroupPackage provides the analytics event publisher.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*analytics.PublisherGroup, error) {
		client := do.MustInvoke[*redis.Client](i)

		publisher, err := redisstream.NewPublisher(
			redisstream.PublisherConfig{Client: client},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			return nil, fmt.Errorf("create analytics publisher: %w", err)
		}

		return analytics.NewPublisherGroup(publisher), nil
	})
}

// ConsumerPackage provides the analytics consumer used by cmd/consumer.
func ConsumerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)

		if opts.PostgresDSN == "" {
			return analyticsstore.NewNoop(logger), nil
		}

		pool, err := pgxpool.New(context.Background(), opts.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		return store.NewAnalyticsPostgresStore(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*analytics.Consumer, error) {
		client := do.MustInvoke[*redis.Client](i)
		logger := do.MustInvoke[*zap.Logger](i)
		eventStore := do.MustInvoke[analytics.Store](i)

		subscriber, err := redisstream.NewSubscriber(
			redisstream.SubscriberConfig{
				Client:        client,
				ConsumerGroup: "analytics",
			},
			watermill.NewStdLogger(false, false),
		)
		if err != nil {
			return nil, fmt.Errorf("create analytics subscriber: %w", err)
		}

		return analytics.NewConsumer(subscriber, eventStore, logger), nil
	})
}

// HTTPPackage provides the router and the fully wired API.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		limiter := do.MustInvoke[ratelimit.Limiter](i)
		loader := do.MustInvoke[*library.Loader](i)
		cacheStore := do.MustInvoke[cache.Store](i)
		searcher := do.MustInvoke[search.Searcher](i)
		aggregator := do.MustInvoke[*availability.Aggregator](i)
		publisherGroup := do.MustInvoke[*analytics.PublisherGroup](i)
		redisClient := do.MustInvoke[*redis.Client](i)

		api := humachi.New(router, huma.DefaultConfig("Book Availability", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.RateLimiter(api, limiter, logger))

		books := handlers.NewBookHandler(
			loader,
			searcher,
			aggregator,
			cacheStore,
			analytics.NewPublishFunc[analytics.SearchPerformedEvent](publisherGroup.Publisher(), analytics.TopicSearchPerformed),
			analytics.NewPublishFunc[analytics.AvailabilityCheckedEvent](publisherGroup.Publisher(), analytics.TopicAvailabilityChecked),
			logger,
		)

		handlers.RegisterRoutes(api, books, handlers.NewLibraryHandler(loader))
		health.RegisterRoutes(api, health.NewHandler(health.NewRedisChecker(redisClient), loader))

		return api, nil
	})
}
