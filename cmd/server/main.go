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

	catalogapp "github.com/pantry/backend/internal/application/catalog"
	identityapp "github.com/pantry/backend/internal/application/identity"
	ledgerapp "github.com/pantry/backend/internal/application/ledger"
	reportapp "github.com/pantry/backend/internal/application/report"
	"github.com/pantry/backend/internal/domain/fiscal"
	"github.com/pantry/backend/internal/infrastructure/auth"
	"github.com/pantry/backend/internal/infrastructure/cache"
	"github.com/pantry/backend/internal/infrastructure/config"
	"github.com/pantry/backend/internal/infrastructure/logger"
	"github.com/pantry/backend/internal/infrastructure/persistence"
	"github.com/pantry/backend/internal/interfaces/http/handler"
	"github.com/pantry/backend/internal/interfaces/http/middleware"
	"github.com/pantry/backend/internal/interfaces/http/router"
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

	log.Info("Starting pantry backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Fiscal calendar with a pinned timezone; period boundaries must not
	// depend on the host environment
	loc, err := time.LoadLocation(cfg.Fiscal.Timezone)
	if err != nil {
		log.Fatal("Invalid fiscal timezone", zap.String("timezone", cfg.Fiscal.Timezone), zap.Error(err))
	}
	calendar, err := fiscal.NewCalendar(cfg.Fiscal.CutoverDay, loc)
	if err != nil {
		log.Fatal("Invalid fiscal calendar configuration", zap.Error(err))
	}

	// Database with GORM logging routed through zap
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
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	reportCache := cache.NewReportCache(
		cache.WithTTL(cfg.Report.CacheTTL),
		cache.WithLogger(log),
	)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	productService := catalogapp.NewProductService(productRepo)
	ledgerService := ledgerapp.NewLedgerService(ledgerRepo, productRepo)
	reportService := reportapp.NewReportService(ledgerRepo, calendar, reportCache, cfg.Report.DefaultPageSize, log)

	// Bootstrap the admin account on an empty user table
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	if err := authService.Bootstrap(bootstrapCtx, cfg.App.AdminUsername, cfg.App.AdminPassword); err != nil {
		log.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}
	cancelBootstrap()

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	reportHandler := handler.NewReportHandler(reportService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	engine.GET("/health", healthHandler(db))

	jwtConfig := middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
		},
		Logger: log,
	}
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(authHandler)
	r.Register(productHandler)
	r.Register(ledgerHandler)
	r.Register(reportHandler)
	r.Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports process and database health
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
