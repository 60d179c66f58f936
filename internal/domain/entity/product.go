package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del menú. Para producirse o venderse en un pedido necesita receta.
type Product struct {
	ID           string
	RestaurantID string
	CategoryID   string
	Name         string
	Description  string
	Price        decimal.Decimal
	ImageURL     string
	Recipe       []RecipeItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecipeItem línea de receta: cantidad de un ingrediente para producir una unidad del producto.
type RecipeItem struct {
	ID           string
	ProductID    string
	IngredientID string
	Quantity     decimal.Decimal // por unidad producida, > 0
	Unit         string
}
