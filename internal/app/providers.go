package app

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	// Domains
	"github.com/outfitpicker/server/internal/domain/wardrobe"

	// Inbound adapters
	ginadapter "github.com/outfitpicker/server/internal/adapter/inbound/gin"

	// Outbound adapters
	redisadapter "github.com/outfitpicker/server/internal/adapter/outbound/redis"
	s3adapter "github.com/outfitpicker/server/internal/adapter/outbound/s3"
	"github.com/outfitpicker/server/internal/adapter/outbound/sqlstore"

	// Ports
	"github.com/outfitpicker/server/internal/model"
	"github.com/outfitpicker/server/internal/port/outbound"

	// Shared
	"github.com/outfitpicker/server/internal/shared/cache"
	"github.com/outfitpicker/server/internal/shared/config"
	"github.com/outfitpicker/server/internal/shared/database"
	"github.com/outfitpicker/server/internal/shared/logger"
	"github.com/outfitpicker/server/internal/utils/metrics"
)

// ===== Infrastructure Providers =====

// InfraSet provides infrastructure dependencies.
var InfraSet = wire.NewSet(
	ProvideLogger,
	ProvideDatabase,
	ProvideRedisClient,
	ProvideRateLimiter,
	ProvideMetricsRegistry,
	ProvideMetrics,
	ProvideS3Client,
)

// ProvideLogger creates the zap logger.
func ProvideLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return log, func() { _ = log.Sync() }, nil
}

// ProvideDatabase opens the metadata store, migrating it when configured.
func ProvideDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, func(), error) {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("init database: %w", err)
	}
	cleanup := func() { _ = database.Close(db) }

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
		log.Info("Database migrated", zap.String("driver", cfg.Database.Driver))
	}
	return db, cleanup, nil
}

// ProvideRedisClient creates a Redis client. A missing or unreachable Redis
// disables rate limiting rather than failing startup.
func ProvideRedisClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (goredis.UniversalClient, func()) {
	client, err := cache.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		log.Warn("Redis connection failed, upload rate limiting disabled", zap.Error(err))
		return nil, func() {}
	}
	return client, func() { _ = cache.Close(client) }
}

// ProvideRateLimiter creates the Redis-backed rate limiter, or nil without Redis.
func ProvideRateLimiter(client goredis.UniversalClient) outbound.RateLimiterPort {
	if client == nil {
		return nil
	}
	return redisadapter.NewRateLimiter(client)
}

// ProvideMetricsRegistry creates the registry served on /metrics.
func ProvideMetricsRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// ProvideMetrics creates the application metrics.
func ProvideMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.New("", reg)
}

// ProvideS3Client creates the S3 client.
func ProvideS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	client, err := s3adapter.NewClient(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("init s3 client: %w", err)
	}
	return client, nil
}

// ===== Storage Providers =====

// StorageSet provides the wardrobe storage adapters.
var StorageSet = wire.NewSet(
	ProvideBreaker,
	ProvideItemDatabase,
	ProvideObjectStorage,
	ProvideItemPicker,
)

// ProvideBreaker creates the circuit breaker shared by the bucket adapters.
func ProvideBreaker(cfg *config.Config, m *metrics.Metrics, log *zap.Logger) *s3adapter.Breaker {
	return s3adapter.NewBreaker(s3adapter.BreakerConfig{
		Name:          "s3",
		MaxFailures:   cfg.Storage.BreakerFailures,
		Timeout:       cfg.Storage.BreakerTimeout,
		OnStateChange: m.SetBreakerState,
	}, log)
}

// ProvideItemDatabase creates the metadata store adapter.
func ProvideItemDatabase(db *gorm.DB) outbound.ItemDatabasePort {
	return sqlstore.NewItemDBAdapter(db)
}

// ProvideObjectStorage creates the guarded bucket adapter.
func ProvideObjectStorage(cfg *config.Config, client *s3.Client, breaker *s3adapter.Breaker) outbound.ObjectStoragePort {
	return s3adapter.NewGuardedObjectStore(s3adapter.NewObjectStore(client, cfg.Storage.Bucket), breaker)
}

// ProvideItemPicker selects the random pick source.
func ProvideItemPicker(
	cfg *config.Config,
	itemDB outbound.ItemDatabasePort,
	client *s3.Client,
	breaker *s3adapter.Breaker,
	log *zap.Logger,
) outbound.ItemPickerPort {
	if cfg.Picker.Source == config.PickerSourceObjectStore {
		picker := s3adapter.NewObjectPicker(client, cfg.Storage.Bucket, log)
		return s3adapter.NewGuardedPicker(picker, breaker)
	}
	return itemDB
}

// ===== Domain Providers =====

// DomainSet provides domain services.
var DomainSet = wire.NewSet(
	ProvideWardrobeConfig,
	ProvideWardrobeDomain,
)

// ProvideWardrobeConfig builds the wardrobe domain configuration.
func ProvideWardrobeConfig(cfg *config.Config) (*wardrobe.Config, error) {
	wcfg := wardrobe.DefaultConfig()
	if len(cfg.Wardrobe.OutfitCategories) > 0 {
		categories, err := model.ParseCategories(cfg.Wardrobe.OutfitCategories)
		if err != nil {
			return nil, fmt.Errorf("wardrobe.outfit_categories: %w", err)
		}
		wcfg.OutfitCategories = categories
	}
	wcfg.PresignExpiry = cfg.Storage.PresignExpiry
	return wcfg, nil
}

// ProvideWardrobeDomain creates the wardrobe domain.
func ProvideWardrobeDomain(
	itemDB outbound.ItemDatabasePort,
	picker outbound.ItemPickerPort,
	storage outbound.ObjectStoragePort,
	m *metrics.Metrics,
	wcfg *wardrobe.Config,
	log *zap.Logger,
) wardrobe.WardrobeDomain {
	return wardrobe.NewWardrobeDomain(itemDB, picker, storage, m, wcfg, log.Named("wardrobe"))
}

// ===== Handler Providers =====

// HandlerSet provides HTTP handlers.
var HandlerSet = wire.NewSet(
	ProvideWardrobeAdapter,
	ProvideWardrobeViews,
)

// ProvideWardrobeAdapter creates the JSON API handlers.
func ProvideWardrobeAdapter(domain wardrobe.WardrobeDomain, cfg *config.Config) *ginadapter.WardrobeAdapter {
	return ginadapter.NewWardrobeAdapter(domain, cfg.Server.MaxUploadBytes)
}

// ProvideWardrobeViews creates the page handlers.
func ProvideWardrobeViews(domain wardrobe.WardrobeDomain, cfg *config.Config) (*ginadapter.WardrobeViews, error) {
	return ginadapter.NewWardrobeViews(domain, cfg.Server.MaxUploadBytes)
}

// AppSet is the complete provider set.
var AppSet = wire.NewSet(
	InfraSet,
	StorageSet,
	DomainSet,
	HandlerSet,
)
