package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/auth"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/usecase"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/postgres"
	"github.com/LuizZonetti1/cafeterias-api/pkg/config"
	"github.com/LuizZonetti1/cafeterias-api/pkg/logger"
)

// seedIngredient ingrediente demo con su entrada inicial.
type seedIngredient struct {
	name    string
	unit    string
	initial string
	perUnit string // cantidad en la receta demo; vacío = no participa
}

var demoIngredients = []seedIngredient{
	{"Pan de hamburguesa", entity.UnitUnits, "40", "1"},
	{"Carne molida", entity.UnitGrams, "8000", "150"},
	{"Queso", entity.UnitUnits, "60", "1"},
	{"Lechuga", entity.UnitGrams, "1500", "20"},
	{"Tomate", entity.UnitGrams, "30", ""},
}

func seedCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Crea un restaurante demo con admin, almacén, ingredientes y una receta",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runSeed(ctx, email, password)
		},
	}
	cmd.Flags().StringVar(&email, "admin-email", "admin@cafeteria.local", "Email del administrador demo")
	cmd.Flags().StringVar(&password, "admin-password", "cambiar123", "Contraseña del administrador demo")
	return cmd
}

func runSeed(ctx context.Context, email, password string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		return err
	}

	restaurantRepo := postgres.NewRestaurantRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	ingredientRepo := postgres.NewIngredientRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	restaurant, err := usecase.NewRestaurantUseCase(restaurantRepo).Create(ctx, dto.CreateRestaurantRequest{Name: "Cafetería Demo"})
	if err != nil {
		return fmt.Errorf("restaurante: %w", err)
	}
	authUC := auth.NewAuthUseCase(postgres.NewUserRepository(pool), restaurantRepo, auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer})
	if _, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
		Email: email, Password: password, Name: "Administrador", RestaurantID: restaurant.ID, Role: entity.RoleAdmin,
	}); err != nil {
		return fmt.Errorf("admin: %w", err)
	}

	warehouse, err := usecase.NewWarehouseUseCase(warehouseRepo).Create(ctx, restaurant.ID, dto.CreateWarehouseRequest{Name: "Cocina principal"})
	if err != nil {
		return fmt.Errorf("almacén: %w", err)
	}
	category, err := usecase.NewCategoryUseCase(categoryRepo).Create(ctx, restaurant.ID, dto.CreateCategoryRequest{Name: "Hamburguesas"})
	if err != nil {
		return fmt.Errorf("categoría: %w", err)
	}

	ingredientUC := usecase.NewIngredientUseCase(txRunner, ingredientRepo, warehouseRepo, nil)
	stockUC := inventory.NewStockUseCase(txRunner, ingredientRepo, postgres.NewStockRepository(pool),
		postgres.NewStockMovementRepository(pool), productRepo, nil, nil, zerolog.Nop())

	var recipe []dto.RecipeItemRequest
	for _, si := range demoIngredients {
		ing, err := ingredientUC.Create(ctx, restaurant.ID, dto.CreateIngredientRequest{Name: si.name, WarehouseID: warehouse.ID, Unit: si.unit})
		if err != nil {
			return fmt.Errorf("ingrediente %s: %w", si.name, err)
		}
		if _, err := stockUC.AddStock(ctx, restaurant.ID, "", ing.ID, dto.AddStockRequest{
			Quantity: decimal.RequireFromString(si.initial), Observation: "Carga inicial",
		}); err != nil {
			return fmt.Errorf("stock %s: %w", si.name, err)
		}
		if si.perUnit != "" {
			recipe = append(recipe, dto.RecipeItemRequest{IngredientID: ing.ID, Quantity: decimal.RequireFromString(si.perUnit), Unit: si.unit})
		}
	}

	product, err := usecase.NewProductUseCase(productRepo, ingredientRepo, categoryRepo).Create(ctx, restaurant.ID, dto.CreateProductRequest{
		Name:       "Hamburguesa clásica",
		Price:      decimal.RequireFromString("12.50"),
		CategoryID: category.ID,
		Recipe:     recipe,
	})
	if err != nil {
		return fmt.Errorf("producto: %w", err)
	}

	log.Info().
		Str("restaurant_id", restaurant.ID).
		Str("admin", email).
		Str("product_id", product.ID).
		Int("ingredients", len(demoIngredients)).
		Msg("datos demo creados")
	return nil
}
