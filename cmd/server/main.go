package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	catalogapp "github.com/moldshop/erp/internal/application/catalog"
	financeapp "github.com/moldshop/erp/internal/application/finance"
	identityapp "github.com/moldshop/erp/internal/application/identity"
	partnerapp "github.com/moldshop/erp/internal/application/partner"
	productionapp "github.com/moldshop/erp/internal/application/production"
	reportapp "github.com/moldshop/erp/internal/application/report"
	tradeapp "github.com/moldshop/erp/internal/application/trade"
	"github.com/moldshop/erp/internal/infrastructure/auth"
	"github.com/moldshop/erp/internal/infrastructure/cache"
	"github.com/moldshop/erp/internal/infrastructure/config"
	"github.com/moldshop/erp/internal/infrastructure/event"
	"github.com/moldshop/erp/internal/infrastructure/logger"
	"github.com/moldshop/erp/internal/infrastructure/migration"
	"github.com/moldshop/erp/internal/infrastructure/persistence"
	"github.com/moldshop/erp/internal/infrastructure/storage"
	"github.com/moldshop/erp/internal/infrastructure/telemetry"
	"github.com/moldshop/erp/internal/interfaces/http/handler"
	"github.com/moldshop/erp/internal/interfaces/http/middleware"
	"github.com/moldshop/erp/internal/interfaces/http/router"
	"github.com/moldshop/erp/migrations"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting moldshop ERP",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	ctx := context.Background()

	// Telemetry comes first so the database plugin and HTTP middleware see the global providers
	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if cfg.Telemetry.SpanProfilesEnabled {
		tracerProvider.EnableSpanProfiles()
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = profiler.Stop()
		_ = meterProvider.Shutdown(shutdownCtx)
		_ = tracerProvider.Shutdown(shutdownCtx)
		_ = loggerProvider.Shutdown(shutdownCtx)
	}()

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level),
		logger.WithSlowThreshold(cfg.Database.SlowThreshold))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Database.SlowThreshold,
		DBName:          cfg.Database.DBName,
	}, log)
	if err := dbTracing.Register(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := migrateSchema(db, cfg.Database.Driver, log); err != nil {
			log.Fatal("Failed to migrate schema", zap.Error(err))
		}
	}

	// Cache backend: redis when configured and reachable, otherwise in-process
	cacheBackend := cache.NewBackend(ctx, cfg.Redis, log)
	defer func() {
		_ = cacheBackend.Close()
	}()

	var tokenBlacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if cacheBackend.Client != nil {
		tokenBlacklist = auth.NewRedisTokenBlacklist(cacheBackend.Client)
	}

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	moldRepo := persistence.NewGormMoldRepository(db.DB)
	machineRepo := persistence.NewGormMachineRepository(db.DB)
	productionOrderRepo := persistence.NewGormProductionOrderRepository(db.DB)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db.DB)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)
	sequenceRepo := persistence.NewGormOrderSequenceRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)
	txManager := persistence.NewGormTxManager(db.DB)

	// Initialize application services
	productService := catalogapp.NewProductService(productRepo, supplierRepo)
	customerService := partnerapp.NewCustomerService(customerRepo)
	supplierService := partnerapp.NewSupplierService(supplierRepo)
	moldService := productionapp.NewMoldService(moldRepo, productRepo)
	machineService := productionapp.NewMachineService(machineRepo)
	productionOrderService := productionapp.NewProductionOrderService(
		productionOrderRepo, moldRepo, machineRepo, productRepo, sequenceRepo, txManager, log,
	)
	salesOrderService := tradeapp.NewSalesOrderService(
		salesOrderRepo, customerRepo, productRepo, transactionRepo, sequenceRepo, txManager, log,
	)
	purchaseOrderService := tradeapp.NewPurchaseOrderService(
		purchaseOrderRepo, supplierRepo, productRepo, transactionRepo, sequenceRepo, txManager, log,
	)
	ledgerService := financeapp.NewLedgerService(transactionRepo)

	archive, err := newArchive(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to initialize export archive", zap.Error(err))
	}
	reportService := reportapp.NewReportService(reportRepo, cacheBackend.Report, archive, log)

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		jwtSecret = randomSecret()
		log.Warn("jwt.secret is not set; using a random secret, tokens will not survive a restart")
	}
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                jwtSecret,
		AccessTokenExpiration: cfg.JWT.AccessTokenExpiration,
		Issuer:                cfg.JWT.Issuer,
	})
	authService := identityapp.NewAuthService(userRepo, auth.NewBcryptHasher(bcrypt.DefaultCost), jwtService, tokenBlacklist, log)
	if _, err := authService.EnsureDefaultAdmin(ctx, cfg.Auth); err != nil {
		log.Fatal("Failed to provision the admin account", zap.Error(err))
	}

	// Event bus: order workflow events feed the metrics and drop cached reports
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(reportapp.NewCacheInvalidator(cacheBackend.Report, log))
	workflowMetrics, err := telemetry.NewWorkflowMetrics(meterProvider.Meter("moldshop-erp/workflow"))
	if err != nil {
		log.Fatal("Failed to create workflow metrics", zap.Error(err))
	}
	eventBus.Subscribe(workflowMetrics)

	productionOrderService.SetEventPublisher(eventBus)
	salesOrderService.SetEventPublisher(eventBus)
	purchaseOrderService.SetEventPublisher(eventBus)

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	httpMetrics, err := middleware.HTTPMetrics(meterProvider.Meter("moldshop-erp/http"))
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(cfg.Telemetry.ServiceName))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(httpMetrics)
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition", handler.ArchiveKeyHeader, handler.ArchiveURLHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	// Workbooks are already zip archives
	engine.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/reports/export"})))

	authenticated := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     jwtService,
		TokenBlacklist: tokenBlacklist,
		Logger:         log,
	})
	// SpanAttributes and Profiling run after authentication so the user is known
	authChain := gin.HandlersChain{authenticated, middleware.SpanAttributes()}
	if profiler.IsEnabled() {
		authChain = append(authChain, middleware.Profiling())
	}
	router.Mount(engine, router.Handlers{
		Auth:            handler.NewAuthHandler(authService),
		Product:         handler.NewProductHandler(productService),
		Customer:        handler.NewCustomerHandler(customerService),
		Supplier:        handler.NewSupplierHandler(supplierService),
		Mold:            handler.NewMoldHandler(moldService),
		Machine:         handler.NewMachineHandler(machineService),
		ProductionOrder: handler.NewProductionOrderHandler(productionOrderService),
		SalesOrder:      handler.NewSalesOrderHandler(salesOrderService),
		PurchaseOrder:   handler.NewPurchaseOrderHandler(purchaseOrderService),
		Transaction:     handler.NewTransactionHandler(ledgerService),
		Report:          handler.NewReportHandler(reportService),
		System:          handler.NewSystemHandler(cfg.App.Name, version, db),
	}, router.Guards{
		Authenticated: authChain,
		AdminOnly:     middleware.RequireRole(log, "admin"),
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// migrateSchema applies the versioned migrations on postgres. SQLite
// databases are local and disposable, so they use gorm's AutoMigrate.
func migrateSchema(db *persistence.Database, driver string, log *zap.Logger) error {
	if driver != "postgres" {
		return db.AutoMigrate()
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, migrations.FS, log)
	if err != nil {
		return err
	}
	return m.Up()
}

// newArchive returns the S3 archive for report exports, or nil when
// storage is disabled and exports are only downloaded
func newArchive(ctx context.Context, cfg *config.Config, log *zap.Logger) (reportapp.Archive, error) {
	if !cfg.Storage.Enabled {
		return nil, nil
	}
	archive, err := storage.NewS3Archive(ctx, &cfg.Storage, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := archive.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	log.Info("Archiving report exports to object storage", zap.String("bucket", archive.Bucket()))
	return archive, nil
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		panic("crypto/rand failed: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
