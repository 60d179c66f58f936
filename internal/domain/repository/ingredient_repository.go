package repository

import (
	"context"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// IngredientRepository define el puerto de persistencia para Ingredient.
// Las lecturas cargan la relación uno a uno con Stock (nil si no existe) y excluyen bajas lógicas.
type IngredientRepository interface {
	Create(ctx context.Context, ing *entity.Ingredient) error
	GetByID(ctx context.Context, id string) (*entity.Ingredient, error)
	// GetByIDs devuelve los ingredientes encontrados indexados por ID.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Ingredient, error)
	// FindByName busca por nombre normalizado (entity.NormalizeName) dentro de un almacén.
	FindByName(ctx context.Context, warehouseID, name string) (*entity.Ingredient, error)
	// ListByRestaurant lista ingredientes; warehouseID vacío no filtra por almacén.
	ListByRestaurant(ctx context.Context, restaurantID, warehouseID string) ([]*entity.Ingredient, error)
	Update(ctx context.Context, ing *entity.Ingredient) error
	SoftDelete(ctx context.Context, id string) error
	HasMovements(ctx context.Context, id string) (bool, error)
}
