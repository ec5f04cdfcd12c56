package main

import (
	"github.com/gin-gonic/gin"
	"github.com/ridloal/product-catalog-service/internal/platform/cache"
	"github.com/ridloal/product-catalog-service/internal/platform/config"
	"github.com/ridloal/product-catalog-service/internal/platform/database"
	"github.com/ridloal/product-catalog-service/internal/platform/logger"
	"github.com/ridloal/product-catalog-service/internal/platform/metrics"
	productAPI "github.com/ridloal/product-catalog-service/internal/product/api"
	productRepo "github.com/ridloal/product-catalog-service/internal/product/repository"
	productService "github.com/ridloal/product-catalog-service/internal/product/service"
)

func main() {
	// Load Config
	dbCfg := config.LoadCatalogDBConfig()
	redisCfg := config.LoadRedisConfig()
	serverCfg := config.LoadServerConfig("8082")
	policy := config.LoadProductPolicy()
	authCfg := config.LoadAuthConfig()

	// Setup Logger
	logger.Info("Starting Catalog Service...")

	// Setup Database
	db, err := database.Connect(dbCfg.DSN)
	if err != nil {
		logger.Error("Failed to connect to database for Catalog Service", err)
		return
	}
	defer db.Close()

	// Setup Cache
	redisCache, err := cache.Connect(redisCfg)
	if err != nil {
		logger.Error("Failed to connect to redis for Catalog Service", err)
		return
	}
	defer redisCache.Close()

	// Setup Dependencies
	recorder := metrics.NewLogRecorder()
	prodRepository := productRepo.NewPostgresProductRepository(db)
	prodService := productService.NewProductService(prodRepository, redisCache, recorder, policy)
	productHandler := productAPI.NewProductHandler(prodService)

	// Setup Gin Router
	router := gin.Default()
	router.RedirectTrailingSlash = false

	apiV1 := router.Group("/api/v1")
	productHandler.RegisterRoutes(apiV1, productAPI.RequireAuth(authCfg.JWTSecret))

	logger.Info("Catalog Service running on port " + serverCfg.Port)
	logger.Info("Catalog Service using SKU format %q with daily create limit %d", policy.SKUFormat, policy.DailyCreateLimit)
	if err := router.Run(serverCfg.Port); err != nil {
		logger.Error("Failed to run Catalog Service server", err)
	}
}
