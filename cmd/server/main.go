package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	identityapp "github.com/shopmetrics/backend/internal/application/identity"
	"github.com/shopmetrics/backend/internal/application/ingest"
	reportapp "github.com/shopmetrics/backend/internal/application/report"
	syncapp "github.com/shopmetrics/backend/internal/application/sync"
	"github.com/shopmetrics/backend/internal/infrastructure/auth"
	"github.com/shopmetrics/backend/internal/infrastructure/cache"
	"github.com/shopmetrics/backend/internal/infrastructure/config"
	"github.com/shopmetrics/backend/internal/infrastructure/ecommerce"
	"github.com/shopmetrics/backend/internal/infrastructure/logger"
	"github.com/shopmetrics/backend/internal/infrastructure/persistence"
	"github.com/shopmetrics/backend/internal/interfaces/http/handler"
	"github.com/shopmetrics/backend/internal/interfaces/http/middleware"
	"github.com/shopmetrics/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting ShopMetrics backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	customerRepo := persistence.NewGormShopCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	deadLetterRepo := persistence.NewGormDeadLetterRepository(db.DB)

	// Report cache: Redis when reachable, in-memory otherwise
	var reportCache cache.ReportCache
	if redisCache, err := cache.NewRedisReportCache(cfg.Redis); err != nil {
		log.Warn("Redis unavailable, using in-memory report cache", zap.Error(err))
		reportCache = cache.NewInMemoryReportCache()
	} else {
		log.Info("Redis report cache connected", zap.String("addr", cfg.Redis.Addr()))
		reportCache = redisCache
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	tenantService := identityapp.NewTenantService(tenantRepo, userRepo, log)
	dashboardService := reportapp.NewDashboardService(reportapp.NewGormReportRepository(db.DB), reportCache, log)

	// Storefront integration
	shopifyConfig := ecommerce.NewShopifyConfig(cfg.Shopify.WebhookSecret)
	if cfg.Shopify.APIVersion != "" {
		shopifyConfig.APIVersion = cfg.Shopify.APIVersion
	}
	if cfg.Shopify.TimeoutSeconds > 0 {
		shopifyConfig.TimeoutSeconds = cfg.Shopify.TimeoutSeconds
	}
	shopifyAdapter, err := ecommerce.NewShopifyAdapter(shopifyConfig)
	if err != nil {
		log.Fatal("Invalid Shopify configuration", zap.Error(err))
	}
	syncService := syncapp.NewService(tenantRepo, orderRepo, customerRepo, productRepo, shopifyAdapter, log)

	// Ingest pipeline
	dispatcher := ingest.NewDispatcher(
		tenantRepo,
		deadLetterRepo,
		ingest.NewOrderHandler(orderRepo, customerRepo, log),
		ingest.NewCustomerHandler(customerRepo, log),
		ingest.NewProductHandler(productRepo, log),
		ingest.DispatcherConfig{
			Workers:      cfg.Ingest.Workers,
			QueueSize:    cfg.Ingest.QueueSize,
			MaxRetries:   cfg.Ingest.MaxRetries,
			RetryBackoff: cfg.Ingest.RetryBackoff,
		},
		log,
	)
	if err := dispatcher.Start(context.Background()); err != nil {
		log.Fatal("Failed to start ingest dispatcher", zap.Error(err))
	}
	webhookService := ingest.NewWebhookService(shopifyConfig, dispatcher, log)

	// HTTP engine and middleware
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Handlers and routes
	systemHandler := handler.NewSystemHandler(db, deadLetterRepo)
	engine.GET("/health", systemHandler.Health)

	jwtMiddleware := middleware.JWTAuthWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
			"/api/v1/system/info",
		},
	})

	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithAPIMiddleware(jwtMiddleware),
	)
	r.Register(handler.NewAuthHandler(authService))
	r.Register(handler.NewTenantHandler(tenantService))
	r.Register(handler.NewDashboardHandler(dashboardService))
	r.Register(handler.NewSyncHandler(syncService))
	r.Register(systemHandler)
	r.RegisterWebhook(handler.NewWebhookHandler(webhookService))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	// Stop accepting webhooks before draining the dispatcher, so no event
	// can be enqueued after the queue is closed.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Error("Dispatcher shutdown error", zap.Error(err))
	}

	log.Info("Shutdown complete")
}
