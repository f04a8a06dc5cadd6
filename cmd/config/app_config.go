package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"SnapShelf-Backend/internal/api/handlers"
	"SnapShelf-Backend/internal/api/routes"
	"SnapShelf-Backend/internal/middleware"
	"SnapShelf-Backend/internal/utils"
	"SnapShelf-Backend/internal/utils/storage"
	"SnapShelf-Backend/pkg/draft"
	"SnapShelf-Backend/pkg/expiry"
	"SnapShelf-Backend/pkg/ingestion"
	"SnapShelf-Backend/pkg/inventory"
	"SnapShelf-Backend/pkg/openai"
	"SnapShelf-Backend/pkg/recipe"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         20 * 1024 * 1024, // photo uploads
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	chatClient := openai.NewClient(utils.GetConfig("OPENAI_API_KEY"), 60*time.Second)

	// Repository
	draftRepository := draft.NewDraftRepository(db)
	inventoryRepository := inventory.NewInventoryRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	expiryService := expiry.NewExpiryService()
	draftService := draft.NewDraftService(draftRepository)
	inventoryService := inventory.NewInventoryService(inventoryRepository)
	recipeService := recipe.NewRecipeService(
		chatClient,
		utils.GetConfig("OPENAI_MODEL"),
		recipeRepository,
		inventoryRepository,
	)

	// Product cache is optional: no REDIS_ADDR means every barcode lookup
	// hits Open Food Facts directly.
	var productCache ingestion.ProductCache
	if addr := utils.GetConfig("REDIS_ADDR"); addr != "" {
		productCache = ingestion.NewRedisProductCache(redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: utils.GetConfig("REDIS_PASSWORD"),
		}))
	}

	ingestionService := ingestion.NewIngestionService(
		ingestion.NewBarcodeScanner(),
		ingestion.NewOpenFoodFactsClient(utils.GetConfig("OPENFOODFACTS_URL")),
		productCache,
		ingestion.NewVisionClient(chatClient, utils.GetConfig("OPENAI_VISION_MODEL")),
		expiryService,
		draftRepository,
		s3,
	)

	// Handler
	draftHandler := handlers.NewDraftHandler(draftService, inventoryService, validator)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	ingestionHandler := handlers.NewIngestionHandler(ingestionService, validator)

	// routes
	routesConfig := routes.Config{
		App:              app,
		DraftHandler:     draftHandler,
		InventoryHandler: inventoryHandler,
		RecipeHandler:    recipeHandler,
		IngestionHandler: ingestionHandler,
		Middleware:       middlewares,
	}
	routesConfig.Setup()
	return app, nil
}
