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

	inventoryapp "github.com/resale/backend/internal/application/inventory"
	purchasingapp "github.com/resale/backend/internal/application/purchasing"
	"github.com/resale/backend/internal/infrastructure/config"
	"github.com/resale/backend/internal/infrastructure/logger"
	"github.com/resale/backend/internal/infrastructure/persistence"
	"github.com/resale/backend/internal/interfaces/http/handler"
	"github.com/resale/backend/internal/interfaces/http/middleware"
	"github.com/resale/backend/internal/interfaces/http/router"
)

//	@title			Resale Backend API
//	@version		1.0
//	@description	Reseller back-office: purchase lots, cost allocation, receiving, and inventory

//	@contact.name	API Support
//	@contact.url	https://github.com/resale/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

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
		_ = logger.Sync(log)
	}()

	log.Info("Starting Resale Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	inventoryItemRepo := persistence.NewGormInventoryItemRepository(db.DB)
	receivingEventRepo := persistence.NewGormReceivingEventRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Initialize application services
	purchaseOrderService := purchasingapp.NewPurchaseOrderService(purchaseOrderRepo, txScope)
	receivingService := purchasingapp.NewReceivingService(purchaseOrderRepo, receivingEventRepo, txScope)
	inventoryService := inventoryapp.NewInventoryService(inventoryItemRepo)

	// Initialize HTTP handlers
	purchaseOrderHandler := handler.NewPurchaseOrderHandler(purchaseOrderService)
	receivingHandler := handler.NewReceivingHandler(receivingService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", systemHandler.Health)

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Purchasing domain (purchase orders, allocation, receiving)
	purchasingRoutes := router.NewDomainGroup("purchasing", "/purchase-orders")
	purchasingRoutes.POST("", purchaseOrderHandler.Create)
	purchasingRoutes.GET("", purchaseOrderHandler.List)
	purchasingRoutes.GET("/:id", purchaseOrderHandler.GetByID)
	purchasingRoutes.PUT("/:id", purchaseOrderHandler.UpdateHeader)
	purchasingRoutes.POST("/:id/items", purchaseOrderHandler.AddItem)
	purchasingRoutes.PUT("/:id/items/:itemID", purchaseOrderHandler.UpdateItem)
	purchasingRoutes.DELETE("/:id/items/:itemID", purchaseOrderHandler.RemoveItem)
	purchasingRoutes.POST("/:id/lock", purchaseOrderHandler.Lock)

	// Receiving routes live under the purchase order they act on
	purchasingRoutes.GET("/:id/receiving/staging", receivingHandler.GetStaging)
	purchasingRoutes.POST("/:id/receiving/commit", receivingHandler.Commit)
	purchasingRoutes.GET("/:id/receiving/events", receivingHandler.ListEvents)

	// Inventory domain (read-only; written by receiving commits)
	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.GET("", inventoryHandler.List)
	inventoryRoutes.GET("/:id", inventoryHandler.GetByID)
	inventoryRoutes.GET("/sku/:sku", inventoryHandler.GetBySellerSKU)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(purchasingRoutes).
		Register(inventoryRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
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
