package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "github.com/outfitpicker/server/cmd/server/docs" // swagger docs

	ginadapter "github.com/outfitpicker/server/internal/adapter/inbound/gin"
	s3adapter "github.com/outfitpicker/server/internal/adapter/outbound/s3"
	"github.com/outfitpicker/server/internal/domain/wardrobe"
	"github.com/outfitpicker/server/internal/port/outbound"
	"github.com/outfitpicker/server/internal/shared/config"
	"github.com/outfitpicker/server/internal/utils/metrics"
	"github.com/outfitpicker/server/internal/utils/middleware"
)

// Dependencies holds all injected dependencies.
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	Redis       goredis.UniversalClient
	RateLimiter outbound.RateLimiterPort
	Registry    *prometheus.Registry
	Metrics     *metrics.Metrics
	Breaker     *s3adapter.Breaker

	// Domains
	WardrobeDomain wardrobe.WardrobeDomain

	// HTTP Handlers
	WardrobeAPI   *ginadapter.WardrobeAdapter
	WardrobeViews *ginadapter.WardrobeViews
}

// App represents the application.
type App struct {
	deps    *Dependencies
	router  *gin.Engine
	cleanup func()
}

// New creates a new application instance.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	deps, cleanup, err := InitializeDependencies(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init dependencies: %w", err)
	}

	app := &App{deps: deps, cleanup: cleanup}
	app.router = app.setupRouter()

	deps.Logger.Info("Application initialized",
		zap.String("database", cfg.Database.Driver),
		zap.String("picker", cfg.Picker.Source),
		zap.String("bucket", cfg.Storage.Bucket),
		zap.Bool("rate_limit", deps.RateLimiter != nil),
	)
	return app, nil
}

// Dependencies returns the wired dependencies.
func (a *App) Dependencies() *Dependencies {
	return a.deps
}

func (a *App) setupRouter() *gin.Engine {
	cfg := a.deps.Config
	if cfg.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = 8 << 20

	r.Use(middleware.Recovery(a.deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.deps.Logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.CORSOrigins...)))
	r.Use(middleware.Metrics(a.deps.Metrics))

	r.GET("/health", a.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.deps.Registry, promhttp.HandlerOpts{})))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	a.registerRoutes(r)
	return r
}

// registerRoutes registers the pages and the JSON API.
func (a *App) registerRoutes(r *gin.Engine) {
	cfg := a.deps.Config
	uploadLimit := middleware.RateLimitByIP(
		a.deps.RateLimiter,
		"upload",
		cfg.Server.UploadRateLimit,
		cfg.Server.UploadRateWindow,
		a.deps.Logger,
	)

	a.deps.WardrobeViews.RegisterRoutes(r, uploadLimit)

	v1 := r.Group("/api/v1")
	a.deps.WardrobeAPI.RegisterRoutes(v1, uploadLimit)
}

func (a *App) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"object_store": a.deps.Breaker.State().String(),
	})
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop stops the application and releases resources.
func (a *App) Stop() {
	if a.cleanup != nil {
		a.cleanup()
	}
}
