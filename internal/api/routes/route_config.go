package routes

import (
	"github.com/gofiber/fiber/v2"

	"SnapShelf-Backend/internal/api/handlers"
	"SnapShelf-Backend/internal/middleware"
)

type Config struct {
	App              *fiber.App
	DraftHandler     handlers.DraftHandler
	InventoryHandler handlers.InventoryHandler
	RecipeHandler    handlers.RecipeHandler
	IngestionHandler handlers.IngestionHandler
	Middleware       middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.DraftItems()
	c.InventoryItems()
	c.Recipes()
	c.Ingestion()
	c.GuestRoute()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}

func (c *Config) DraftItems() {
	drafts := c.App.Group("/api/v1/draft-items", c.Middleware.IdentityMiddleware())

	drafts.Post("", c.DraftHandler.CreateDraft)
	drafts.Get("", c.DraftHandler.GetDrafts)
	drafts.Get("/:id", c.DraftHandler.GetDraft)
	drafts.Patch("/:id", c.DraftHandler.UpdateDraft)
	drafts.Delete("/:id", c.DraftHandler.DiscardDraft)

	// Confirmation is the only path from draft to inventory.
	drafts.Post("/:id/confirm", c.DraftHandler.ConfirmDraft)
}

func (c *Config) InventoryItems() {
	items := c.App.Group("/api/v1/inventory-items", c.Middleware.IdentityMiddleware())

	items.Post("", c.InventoryHandler.AddInventoryItem)
	items.Get("", c.InventoryHandler.GetInventoryItems)
	items.Get("/:id", c.InventoryHandler.GetInventoryItem)
	items.Patch("/:id", c.InventoryHandler.UpdateQuantity)
	items.Delete("/:id", c.InventoryHandler.DeleteInventoryItem)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.IdentityMiddleware())

	recipes.Post("/generate", c.RecipeHandler.GenerateRecipes)
	recipes.Get("/expiring-ingredients", c.RecipeHandler.GetExpiringIngredients)
	recipes.Post("/saved", c.RecipeHandler.SaveRecipe)
	recipes.Get("/saved", c.RecipeHandler.GetSavedRecipes)
	recipes.Delete("/saved/:id", c.RecipeHandler.UnsaveRecipe)
}

func (c *Config) Ingestion() {
	ingest := c.App.Group("/api/v1/ingest", c.Middleware.IdentityMiddleware())

	ingest.Post("/barcode", c.IngestionHandler.IngestBarcodeImage)
	ingest.Post("/barcode-lookup", c.IngestionHandler.IngestBarcode)
	ingest.Post("/image", c.IngestionHandler.IngestImage)
}
