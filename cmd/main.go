package main

import (
	"context"
	"fmt"
	"log"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "shopmart/docs"
	"shopmart/internal/caching"
	"shopmart/internal/config"
	"shopmart/internal/handlers"
	"shopmart/internal/jobs"
	"shopmart/internal/repositories"
	"shopmart/internal/services"
	"shopmart/pkg/database"
)

const version = "1.0.0"

// @title Shopmart API
// @version 1.0
// @description Catalog and order CRUD API over a relational schema.
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Database connection pool
	pool, err := database.NewPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Cache service
	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	// Object storage for product images
	imageSvc, err := services.NewMinioImageService(cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize image service: %v", err)
	}
	if err := imageSvc.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARN: could not ensure image bucket exists: %v", err)
	}

	// Repositories
	categoryRepo := repositories.NewCategoryRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	productImageRepo := repositories.NewProductImageRepo(pool)
	orderRepo := repositories.NewOrderRepo(pool)

	// Handlers
	categoryHandlers := handlers.NewCategoryHandlers(categoryRepo, cacheSvc)
	productHandlers := handlers.NewProductHandlers(productRepo, productImageRepo, imageSvc, cacheSvc)
	orderHandlers := handlers.NewOrderHandlers(orderRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Low-stock sweep
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	stockAlerts := jobs.NewStockAlertService(productRepo, cfg.LowStockThreshold)
	if _, err := stockAlerts.Schedule(scheduler, cfg.LowStockInterval); err != nil {
		log.Fatalf("Failed to schedule low-stock sweep: %v", err)
	}
	scheduler.Start()
	defer scheduler.Shutdown()

	// Echo instance
	e := echo.New()
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health and docs
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/docs/*", echoSwagger.WrapHandler)

	// Category routes
	e.POST("/category/insert", categoryHandlers.CreateCategory)
	e.POST("/category/bulk-insert", categoryHandlers.BulkInsertCategories)
	e.POST("/category/upsert/:id", categoryHandlers.UpdateCategoryByID)
	e.POST("/category/upsert", categoryHandlers.UpsertCategoryByName)
	e.POST("/category/update-many", categoryHandlers.UpdateManyCategories)
	e.GET("/categories", categoryHandlers.ListCategories)
	e.POST("/categories", categoryHandlers.CreateCategoryWithProducts)
	e.GET("/categories/:id", categoryHandlers.GetCategory)
	e.DELETE("/categories/:id", categoryHandlers.DeleteCategory)
	e.DELETE("/categories", categoryHandlers.BulkDeleteCategories)

	// Product routes
	e.GET("/products", productHandlers.ListProducts)
	e.POST("/products", productHandlers.CreateProduct)
	e.GET("/products/:id", productHandlers.GetProduct)
	e.POST("/products/:id/images", productHandlers.UploadProductImage)
	e.GET("/products/:id/images", productHandlers.ListProductImages)

	// Order placement
	e.POST("/users/orders", orderHandlers.PlaceOrder)

	log.Printf("Shopmart server v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
