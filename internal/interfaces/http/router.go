package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/auth"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/notification"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/order"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/usecase"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	RestaurantUC    *usecase.RestaurantUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	CategoryUC      *usecase.CategoryUseCase
	IngredientUC    *usecase.IngredientUseCase
	ProductUC       *usecase.ProductUseCase
	StockUC         *inventory.StockUseCase
	ProductionUC    *inventory.ProductionUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	OrderUC         *order.UseCase
	Notifications   *notification.Service
	JWTSecret       string

	// Opcionales.
	RateLimit fiber.Handler
	Metrics   HTTPObserver
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
	}

	api := app.Group("/api")
	if deps.RateLimit != nil {
		api.Use(deps.RateLimit)
	}
	requireAuth := AuthMiddleware(deps.JWTSecret)

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)

	// Restaurants: alta y listado solo para la plataforma
	restaurantHandler := NewRestaurantHandler(deps.RestaurantUC)
	restaurants := protected.Group("/restaurants")
	restaurants.Post("/", RequirePermission(PermRestaurantManage), restaurantHandler.Create)
	restaurants.Get("/", RequireRole(entity.RoleDeveloper), restaurantHandler.List)
	restaurants.Get("/:id", restaurantHandler.GetByID)

	read, write := RequirePermission(PermCatalogRead), RequirePermission(PermCatalogWrite)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := protected.Group("/warehouses")
	warehouses.Post("/", write, warehouseHandler.Create)
	warehouses.Get("/", read, warehouseHandler.List)
	warehouses.Get("/:id", read, warehouseHandler.GetByID)
	warehouses.Put("/:id", write, warehouseHandler.Update)
	warehouses.Delete("/:id", write, warehouseHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Post("/", write, categoryHandler.Create)
	categories.Get("/", read, categoryHandler.List)

	ingredientHandler := NewIngredientHandler(deps.IngredientUC)
	ingredients := protected.Group("/ingredients")
	ingredients.Post("/", write, ingredientHandler.Create)
	ingredients.Get("/", read, ingredientHandler.List)
	ingredients.Get("/:id", read, ingredientHandler.GetByID)
	ingredients.Put("/:id", write, ingredientHandler.Update)
	ingredients.Delete("/:id", write, ingredientHandler.Delete)

	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Post("/", write, productHandler.Create)
	products.Get("/", read, productHandler.List)
	products.Get("/:id", read, productHandler.GetByID)
	products.Put("/:id", write, productHandler.Update)
	products.Put("/:id/recipe", write, productHandler.UpdateRecipe)
	products.Delete("/:id", write, productHandler.Delete)

	// Stock y producción. Las rutas fijas van antes que /:ingredientId.
	stockHandler := NewStockHandler(deps.StockUC, deps.ProductionUC, deps.ReplenishmentUC)
	stockRead := RequirePermission(PermStockRead)
	stock := protected.Group("/stock")
	stock.Get("/overview", stockRead, stockHandler.Overview)
	stock.Get("/replenishment", stockRead, stockHandler.Replenishment)
	stock.Post("/:ingredientId/entries", RequirePermission(PermStockWrite), stockHandler.AddStock)
	stock.Post("/:ingredientId/losses", RequirePermission(PermStockLoss), stockHandler.RegisterLoss)
	stock.Put("/:ingredientId/minimum", RequirePermission(PermStockWrite), stockHandler.SetMinimum)
	stock.Get("/:ingredientId/movements", stockRead, stockHandler.ListMovements)
	protected.Post("/production", RequirePermission(PermProductionRun), stockHandler.Produce)

	orderHandler := NewOrderHandler(deps.OrderUC)
	orderRead := RequirePermission(PermOrderRead)
	orders := protected.Group("/orders")
	orders.Post("/", RequirePermission(PermOrderWrite), orderHandler.Create)
	orders.Get("/", orderRead, orderHandler.List)
	orders.Get("/:id", orderRead, orderHandler.GetByID)
	orders.Get("/:id/ticket", orderRead, orderHandler.Ticket)
	orders.Patch("/:id/status", RequirePermission(PermOrderStatus), orderHandler.UpdateStatus)
	orders.Post("/:id/cancel", RequirePermission(PermOrderStatus), orderHandler.Cancel)
	orders.Post("/:id/complete", RequirePermission(PermOrderComplete), orderHandler.Complete)

	notificationHandler := NewNotificationHandler(deps.Notifications)
	notifRead := RequirePermission(PermNotificationRead)
	notifications := protected.Group("/notifications")
	notifications.Get("/", notifRead, notificationHandler.List)
	notifications.Patch("/read-all", notifRead, notificationHandler.MarkAllRead)
	notifications.Delete("/read", notifRead, notificationHandler.DeleteAllRead)
	notifications.Patch("/:id/read", notifRead, notificationHandler.MarkRead)
	notifications.Delete("/:id", notifRead, notificationHandler.Delete)
}
