package repository

import (
	"context"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// OrderFilter filtros de listado de pedidos.
type OrderFilter struct {
	RestaurantID string
	Status       string // vacío = todos
	Limit        int
	Offset       int
}

// OrderRepository define el puerto de persistencia para Order (con líneas y adicionales).
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, f OrderFilter) ([]*entity.Order, error)
	CountByStatus(ctx context.Context, restaurantID string) (map[string]int, error)
	// TransitionStatus cambia el estado solo si el actual está en from. Fija completed_at /
	// cancelled_at según el destino. Devuelve false si ninguna fila cumplió la condición.
	TransitionStatus(ctx context.Context, id string, from []string, to, reason string) (bool, error)
}
