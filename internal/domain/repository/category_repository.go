package repository

import (
	"context"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	ListByRestaurant(ctx context.Context, restaurantID string) ([]*entity.Category, error)
}
