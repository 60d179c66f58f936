package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRestaurantRequest entrada para crear un restaurante.
type CreateRestaurantRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// RestaurantResponse salida de un restaurante.
type RestaurantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateWarehouseRequest entrada para crear un almacén.
type CreateWarehouseRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// UpdateWarehouseRequest entrada para actualizar un almacén.
type UpdateWarehouseRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WarehouseListResponse lista paginada de almacenes.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurantId"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateIngredientRequest entrada para crear un ingrediente (unidad por defecto GRAMS).
type CreateIngredientRequest struct {
	Name        string `json:"name"`
	WarehouseID string `json:"warehouseId"`
	Unit        string `json:"unit,omitempty"`
}

// UpdateIngredientRequest entrada para actualizar un ingrediente.
type UpdateIngredientRequest struct {
	Name *string `json:"name"`
	Unit *string `json:"unit"`
}

// IngredientResponse salida de un ingrediente con su stock (nil si no tiene).
type IngredientResponse struct {
	ID           string         `json:"id"`
	RestaurantID string         `json:"restaurantId"`
	WarehouseID  string         `json:"warehouseId"`
	Name         string         `json:"name"`
	Unit         string         `json:"unit"`
	Stock        *StockResponse `json:"stock"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// RecipeItemRequest línea de receta.
type RecipeItemRequest struct {
	IngredientID string          `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit,omitempty"`
}

// CreateProductRequest entrada para crear un producto con su receta.
type CreateProductRequest struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Price       decimal.Decimal     `json:"price"`
	CategoryID  string              `json:"categoryId"`
	ImageURL    string              `json:"imageUrl,omitempty"`
	Recipe      []RecipeItemRequest `json:"recipe"`
}

// UpdateProductRequest entrada para actualizar datos del producto (no la receta).
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	CategoryID  *string          `json:"categoryId"`
	ImageURL    *string          `json:"imageUrl"`
}

// UpdateRecipeRequest entrada para reemplazar la receta.
type UpdateRecipeRequest struct {
	Recipe []RecipeItemRequest `json:"recipe"`
}

// RecipeItemResponse línea de receta.
type RecipeItemResponse struct {
	IngredientID string          `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string               `json:"id"`
	RestaurantID string               `json:"restaurantId"`
	CategoryID   string               `json:"categoryId"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	Price        decimal.Decimal      `json:"price"`
	ImageURL     string               `json:"imageUrl,omitempty"`
	Recipe       []RecipeItemResponse `json:"recipe"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
