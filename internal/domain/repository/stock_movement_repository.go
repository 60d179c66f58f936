package repository

import (
	"context"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// StockMovementRepository puerto del libro de movimientos (solo inserción y lectura).
type StockMovementRepository interface {
	Create(ctx context.Context, m *entity.StockMovement) error
	// ListByStock devuelve los movimientos más recientes primero.
	ListByStock(ctx context.Context, stockID string, limit, offset int) ([]*entity.StockMovement, error)
}
