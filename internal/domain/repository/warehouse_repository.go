package repository

import (
	"context"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de persistencia para Warehouse.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, id string) (*entity.Warehouse, error)
	Update(ctx context.Context, w *entity.Warehouse) error
	ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*entity.Warehouse, error)
	Delete(ctx context.Context, id string) error
}
