package repository

import (
	"context"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// RestaurantRepository define el puerto de persistencia para Restaurant (tenant).
type RestaurantRepository interface {
	Create(ctx context.Context, r *entity.Restaurant) error
	GetByID(ctx context.Context, id string) (*entity.Restaurant, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Restaurant, error)
}
