package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"relatedAttributes/app/echo-server/router"
	"relatedAttributes/business/product"
	"relatedAttributes/business/related"
	"relatedAttributes/business/settings"
	"relatedAttributes/internal/middleware"
	psqlRepo "relatedAttributes/internal/repository/postgres"
	redisRepo "relatedAttributes/internal/repository/redis"
	"relatedAttributes/internal/rest"
	"relatedAttributes/pkg/config"
	"relatedAttributes/pkg/database"
	redisClient "relatedAttributes/pkg/database/redis"
	"relatedAttributes/pkg/logger"
	"relatedAttributes/pkg/metrics"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting related products service", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	metrics.Init()

	// Init repo
	catalogRepo := psqlRepo.NewCatalogRepository(db)
	optionRepo := psqlRepo.NewOptionRepository(db)
	productRepo := psqlRepo.NewProductRepository(db)

	// term counts are read on every scoring call, cache them when redis is on
	var termCounter related.TermCounter = catalogRepo
	if cfg.Redis.Enabled {
		rdb, err := redisClient.NewRedisClient(context.Background(), cfg.Redis)
		if err != nil {
			logger.Fatal("Failed to connect to redis", "error", err)
		}
		defer func() {
			if err := redisClient.CloseRedisClient(rdb); err != nil {
				logger.Error("Failed to close redis", "error", err)
			}
		}()

		termCounter = redisRepo.NewTermCountCache(rdb, catalogRepo, cfg.Related.TermCountTTL)
		logger.Info("Redis term count cache enabled", "ttl", cfg.Related.TermCountTTL.String())
	}

	// Init service
	startCtx, startCancel := context.WithTimeout(context.Background(), 10*time.Second)
	relatedService := related.NewRelatedService(
		startCtx,
		catalogRepo,
		termCounter,
		optionRepo,
		nil,
		// categories and tags only narrow the storefront query, they are not scored
		related.CategorySource(catalogRepo),
		related.TagSource(catalogRepo),
	)
	startCancel()

	productService := product.NewProductService(productRepo, relatedService, cfg.Related.DefaultLimit)
	settingsService := settings.NewSettingsService(optionRepo, catalogRepo, termCounter, relatedService)

	// Init handler
	relatedHandler := rest.NewRelatedHandler(productService, relatedService)
	relatedSettingsHandler := rest.NewRelatedSettingsHandler(settingsService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPut},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	authRequired := middleware.AuthMiddleware()
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupRelatedRoutes(api, relatedHandler, authRequired)
	router.SetupRelatedSettingsRoutes(api, relatedSettingsHandler, authRequired, adminOnly)
	router.SetupMetricsRoute(e)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
