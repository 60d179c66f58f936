package postgres

import (
	"context"
	"fmt"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en PostgreSQL. Solo inserción.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador del libro de movimientos.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create inserta un movimiento. La cantidad debe ser positiva.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	if !m.Quantity.IsPositive() {
		return fmt.Errorf("%w: cantidad de movimiento no positiva", domain.ErrInvalidInput)
	}
	query := `
		INSERT INTO stock_movements
			(id, stock_id, type, quantity, reason, cost_per_unit, supplier, expiration_date, observation, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.StockID, m.Type, m.Quantity, m.Reason, m.CostPerUnit, m.Supplier, m.ExpirationDate,
		m.Observation, m.UserID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByStock movimientos del stock, los más recientes primero.
func (r *StockMovementRepo) ListByStock(ctx context.Context, stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, stock_id, type, quantity, reason, cost_per_unit, supplier, expiration_date, observation, user_id, created_at
		FROM stock_movements
		WHERE stock_id = $1
		ORDER BY created_at DESC, id
		LIMIT NULLIF($2::int, 0) OFFSET $3`
	rows, err := r.q.Query(ctx, query, stockID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		if err := rows.Scan(
			&m.ID, &m.StockID, &m.Type, &m.Quantity, &m.Reason, &m.CostPerUnit, &m.Supplier, &m.ExpirationDate,
			&m.Observation, &m.UserID, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
