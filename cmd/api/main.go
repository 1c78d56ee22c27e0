package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Krzemon/Instruments-Graph/internal/config"
	"github.com/Krzemon/Instruments-Graph/internal/database"
	_ "github.com/Krzemon/Instruments-Graph/internal/docs" // Import swagger docs
	"github.com/Krzemon/Instruments-Graph/internal/graph"
	"github.com/Krzemon/Instruments-Graph/internal/handlers"
	"github.com/Krzemon/Instruments-Graph/internal/logger"
	"github.com/Krzemon/Instruments-Graph/internal/marketdata"
	"github.com/Krzemon/Instruments-Graph/internal/middleware"
	"github.com/Krzemon/Instruments-Graph/internal/scheduler"
	"github.com/Krzemon/Instruments-Graph/internal/services"
	"github.com/Krzemon/Instruments-Graph/internal/validator"
)

// @title           Instruments-Graph API
// @version         1.0
// @description     Instruments-Graph tracks a single investment portfolio as a property graph and computes pairwise price correlations and volatility-based risk scores for its assets.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Market data feed and forex conversion
	httpClient := &http.Client{Timeout: appConfig.FeedTimeout}
	feed := marketdata.NewYahooFeed(httpClient, appConfig.FeedBaseURL, appConfig.QuoteBaseURL)
	fx := marketdata.NewForexConverter(feed, appConfig.BaseCurrency)

	// Graph persistence adapter and services
	db := dbManager.DB()
	store := graph.NewStore(db)
	assetService := services.NewAssetService(db)
	portfolioService := services.NewPortfolioService(db, store, fx)
	analyticsService := services.NewAnalyticsService(db, feed, store)
	recommendService := services.NewRecommendService(db, store)

	// Handlers
	assetHandler := handlers.NewAssetHandler(assetService, analyticsService, portfolioService)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
	recommendHandler := handlers.NewRecommendHandler(recommendService)

	// Custom binding validators
	validator.Register()

	// Background price refresher (disabled when REFRESH_INTERVAL is unset)
	if appConfig.RefreshInterval > 0 {
		refresher := scheduler.NewRefresher(analyticsService, appConfig.RefreshInterval, logger.Get())
		go refresher.Run(context.Background())
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":           "ok",
			"graph_connection": dbManager.Ping(),
		})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Asset routes
	assets := v1.Group("/assets")
	assets.GET("", assetHandler.ListAssets)
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("/values", assetHandler.Values)
	assets.GET("/:id", assetHandler.GetAsset)
	assets.DELETE("/:id", assetHandler.DeleteAsset)
	assets.PUT("/:id/price", assetHandler.RefreshPrice)

	// Portfolio routes
	portfolio := v1.Group("/portfolio")
	portfolio.GET("", portfolioHandler.List)
	portfolio.POST("", portfolioHandler.Add)
	portfolio.GET("/class-distribution", portfolioHandler.ClassDistribution)
	portfolio.GET("/graph", portfolioHandler.Graph)
	portfolio.PUT("/:asset_id", portfolioHandler.Update)
	portfolio.DELETE("/:asset_id", portfolioHandler.Remove)

	// Analytics routes
	v1.POST("/calculate-correlations", analyticsHandler.CalculateCorrelations)
	v1.GET("/update-risk", analyticsHandler.UpdateRisk)

	// Recommendation routes
	recommend := v1.Group("/recommend")
	recommend.GET("/top_correlated/:id", recommendHandler.TopCorrelated)
	recommend.GET("/diversifiers", recommendHandler.Diversifiers)

	logger.Get().Infof("Starting server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
