package main

import (
	"github.com/invmanage/inventory-service/internal/handler"
	mid "github.com/invmanage/inventory-service/internal/middleware"
	"github.com/invmanage/inventory-service/internal/store"
	"github.com/invmanage/inventory-service/pkg/config"
	"github.com/invmanage/inventory-service/pkg/jwtutil"
	"github.com/invmanage/inventory-service/pkg/logger"
	"github.com/invmanage/inventory-service/prometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (reads .env if present)
	appConfig, err := config.Load("inventory-service")
	if err != nil {
		// Can't use structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(appConfig); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting inventory-service", appConfig.LogConfig()...)

	// Initialize JWT utility
	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize the storage backend selected by configuration
	if err := store.Init(appConfig); err != nil {
		log.Fatal("Failed to initialize storage backend", zap.Error(err))
	}
	log.Info("Storage backend ready", zap.String("backend", appConfig.Storage.Backend))

	handler.Init(appConfig)

	// Initialize Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	// Metrics endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Category API routes
	categoryAPI := e.Group("/api/categories")
	categoryAPI.GET("", handler.ListCategories)
	categoryAPI.GET("/:id", handler.GetCategory)
	categoryAPI.POST("", handler.CreateCategory)
	categoryAPI.PUT("/:id", handler.UpdateCategory)
	categoryAPI.DELETE("/:id", handler.DeleteCategory)

	// Product API routes
	productAPI := e.Group("/api/products")
	productAPI.GET("", handler.ListProducts)
	productAPI.GET("/:id", handler.GetProduct)
	productAPI.POST("", handler.CreateProduct)
	productAPI.PUT("/:id", handler.UpdateProduct)
	productAPI.DELETE("/:id", handler.DeleteProduct)

	// POS sales ingestion and reports
	posAPI := e.Group("/api/pos")
	posAPI.POST("/sales", handler.UploadSales)
	posAPI.GET("/sales", handler.ListSales)

	reportAPI := e.Group("/api/reports")
	reportAPI.GET("/low-stock", handler.LowStockReport)
	reportAPI.GET("/restock", handler.RestockReport)
	reportAPI.GET("/top-selling", handler.TopSelling)

	e.GET("/api/dashboard/stats", handler.GetDashboardStats)

	// Admin surface - JWT protected
	userAPI := e.Group("/api/users", mid.AuthMiddleware)
	userAPI.GET("", handler.ListUsers)
	userAPI.POST("", handler.CreateUser)
	userAPI.PUT("/:id", handler.UpdateUser)
	userAPI.DELETE("/:id", handler.DeleteUser)

	settingAPI := e.Group("/api/settings", mid.AuthMiddleware)
	settingAPI.GET("", handler.ListSettings)
	settingAPI.PUT("/:key", handler.UpdateSetting)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
