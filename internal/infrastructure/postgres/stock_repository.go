package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

const stockColumns = `id, ingredient_id, quantity_current, quantity_minimum, average_cost, last_updated_by, created_at, updated_at`

// StockRepo implementación del puerto StockRepository sobre PostgreSQL.
// Las mutaciones son un único UPDATE ... RETURNING para no perder escrituras concurrentes.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de persistencia para stock.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Create persiste la fila de stock de un ingrediente. Solo puede existir una.
func (r *StockRepo) Create(ctx context.Context, st *entity.Stock) error {
	query := `
		INSERT INTO stocks (id, ingredient_id, quantity_current, quantity_minimum, average_cost, last_updated_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		st.ID, st.IngredientID, st.QuantityCurrent, st.QuantityMinimum, st.AverageCost, st.LastUpdatedBy,
		st.CreatedAt, st.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// GetByIngredient obtiene el stock del ingrediente; (nil, nil) si no tiene.
func (r *StockRepo) GetByIngredient(ctx context.Context, ingredientID string) (*entity.Stock, error) {
	return r.one(ctx, `SELECT `+stockColumns+` FROM stocks WHERE ingredient_id = $1`, ingredientID)
}

// GetForUpdate igual que GetByIngredient pero bloquea la fila hasta el fin de la tx.
func (r *StockRepo) GetForUpdate(ctx context.Context, ingredientID string) (*entity.Stock, error) {
	return r.one(ctx, `SELECT `+stockColumns+` FROM stocks WHERE ingredient_id = $1 FOR UPDATE`, ingredientID)
}

// Decrement resta amount solo si alcanza; si no, (nil, nil) y la fila queda intacta.
func (r *StockRepo) Decrement(ctx context.Context, stockID string, amount decimal.Decimal, userID string) (*entity.Stock, error) {
	query := `
		UPDATE stocks
		SET quantity_current = quantity_current - $2, last_updated_by = $3, updated_at = now()
		WHERE id = $1 AND quantity_current >= $2
		RETURNING ` + stockColumns
	return r.one(ctx, query, stockID, amount, userID)
}

// Increment suma amount y fija el nuevo costo promedio.
func (r *StockRepo) Increment(ctx context.Context, stockID string, amount, averageCost decimal.Decimal, userID string) (*entity.Stock, error) {
	query := `
		UPDATE stocks
		SET quantity_current = quantity_current + $2, average_cost = $3, last_updated_by = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + stockColumns
	st, err := r.one(ctx, query, stockID, amount, averageCost, userID)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

// SetMinimum fija el umbral de alerta.
func (r *StockRepo) SetMinimum(ctx context.Context, stockID string, minimum decimal.Decimal, userID string) (*entity.Stock, error) {
	query := `
		UPDATE stocks
		SET quantity_minimum = $2, last_updated_by = $3, updated_at = now()
		WHERE id = $1
		RETURNING ` + stockColumns
	return r.one(ctx, query, stockID, minimum, userID)
}

func (r *StockRepo) one(ctx context.Context, query string, args ...any) (*entity.Stock, error) {
	var st entity.Stock
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&st.ID, &st.IngredientID, &st.QuantityCurrent, &st.QuantityMinimum, &st.AverageCost, &st.LastUpdatedBy,
		&st.CreatedAt, &st.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("stock: %w", err)
	}
	return &st, nil
}
