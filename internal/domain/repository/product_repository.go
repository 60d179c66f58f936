package repository

import (
	"context"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product y su receta.
// Las lecturas incluyen Recipe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetByIDs devuelve los productos encontrados indexados por ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error)
	ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// ReplaceRecipe sustituye todas las líneas de receta del producto.
	ReplaceRecipe(ctx context.Context, productID string, items []entity.RecipeItem) error
	Delete(ctx context.Context, id string) error
	IsReferencedByOrders(ctx context.Context, id string) (bool, error)
	// RecipeUsage nombres de productos que usan cada ingrediente del restaurante.
	RecipeUsage(ctx context.Context, restaurantID string) (map[string][]string, error)
}
