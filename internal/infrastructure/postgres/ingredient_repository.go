package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var _ repository.IngredientRepository = (*IngredientRepo)(nil)

// Lectura de ingrediente con su stock opcional (LEFT JOIN uno a uno).
const ingredientSelect = `
	SELECT i.id, i.restaurant_id, i.warehouse_id, i.name, i.unit, i.created_at, i.updated_at,
	       s.id, s.quantity_current, s.quantity_minimum, s.average_cost, s.last_updated_by, s.created_at, s.updated_at
	FROM ingredients i
	LEFT JOIN stocks s ON s.ingredient_id = i.id
	WHERE i.deleted_at IS NULL`

// IngredientRepo implementación del puerto IngredientRepository sobre PostgreSQL.
type IngredientRepo struct {
	q Querier
}

// NewIngredientRepository construye el adaptador de persistencia para ingredientes.
func NewIngredientRepository(q Querier) *IngredientRepo {
	return &IngredientRepo{q: q}
}

// Create persiste el ingrediente (sin stock). Nombre repetido en el almacén: ErrDuplicate.
func (r *IngredientRepo) Create(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		INSERT INTO ingredients (id, restaurant_id, warehouse_id, name, normalized_name, unit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		ing.ID, ing.RestaurantID, ing.WarehouseID, ing.Name, entity.NormalizeName(ing.Name), ing.Unit,
		ing.CreatedAt, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ingredient: %w", err)
	}
	return nil
}

// GetByID obtiene un ingrediente activo con su stock.
func (r *IngredientRepo) GetByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	ing, err := scanIngredient(r.q.QueryRow(ctx, ingredientSelect+` AND i.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ingredient: %w", err)
	}
	return ing, nil
}

// GetByIDs carga varios ingredientes en una sola consulta.
func (r *IngredientRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Ingredient, error) {
	out := make(map[string]*entity.Ingredient, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	list, err := r.list(ctx, ingredientSelect+` AND i.id::text = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, ing := range list {
		out[ing.ID] = ing
	}
	return out, nil
}

// FindByName busca por nombre normalizado dentro del almacén.
func (r *IngredientRepo) FindByName(ctx context.Context, warehouseID, name string) (*entity.Ingredient, error) {
	ing, err := scanIngredient(r.q.QueryRow(ctx,
		ingredientSelect+` AND i.warehouse_id = $1 AND i.normalized_name = $2`,
		warehouseID, entity.NormalizeName(name),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find ingredient: %w", err)
	}
	return ing, nil
}

// ListByRestaurant lista ingredientes activos; warehouseID vacío no filtra.
func (r *IngredientRepo) ListByRestaurant(ctx context.Context, restaurantID, warehouseID string) ([]*entity.Ingredient, error) {
	if warehouseID == "" {
		return r.list(ctx, ingredientSelect+` AND i.restaurant_id = $1 ORDER BY i.name`, restaurantID)
	}
	return r.list(ctx,
		ingredientSelect+` AND i.restaurant_id = $1 AND i.warehouse_id = $2 ORDER BY i.name`,
		restaurantID, warehouseID,
	)
}

// Update actualiza nombre, almacén y unidad.
func (r *IngredientRepo) Update(ctx context.Context, ing *entity.Ingredient) error {
	query := `
		UPDATE ingredients
		SET name = $2, normalized_name = $3, warehouse_id = $4, unit = $5, updated_at = $6
		WHERE id = $1 AND deleted_at IS NULL`
	tag, err := r.q.Exec(ctx, query,
		ing.ID, ing.Name, entity.NormalizeName(ing.Name), ing.WarehouseID, ing.Unit, ing.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete marca deleted_at; stock y movimientos se conservan.
func (r *IngredientRepo) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE ingredients SET deleted_at = now(), updated_at = now() WHERE id = $1 AND deleted_at IS NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("soft delete ingredient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasMovements indica si el stock del ingrediente tiene movimientos registrados.
func (r *IngredientRepo) HasMovements(ctx context.Context, id string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM stock_movements m
			JOIN stocks s ON s.id = m.stock_id
			WHERE s.ingredient_id = $1
		)`
	var exists bool
	if err := r.q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("ingredient movements: %w", err)
	}
	return exists, nil
}

func (r *IngredientRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Ingredient, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	defer rows.Close()

	var list []*entity.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, ing)
	}
	return list, rows.Err()
}

func scanIngredient(row pgx.Row) (*entity.Ingredient, error) {
	var (
		ing                      entity.Ingredient
		stockID, updatedBy       *string
		current, minimum, avg    *decimal.Decimal
		stockCreated, stockSaved *time.Time
	)
	err := row.Scan(
		&ing.ID, &ing.RestaurantID, &ing.WarehouseID, &ing.Name, &ing.Unit, &ing.CreatedAt, &ing.UpdatedAt,
		&stockID, &current, &minimum, &avg, &updatedBy, &stockCreated, &stockSaved,
	)
	if err != nil {
		return nil, err
	}
	if stockID != nil {
		ing.Stock = &entity.Stock{
			ID:              *stockID,
			IngredientID:    ing.ID,
			QuantityCurrent: *current,
			QuantityMinimum: *minimum,
			AverageCost:     *avg,
			LastUpdatedBy:   *updatedBy,
			CreatedAt:       *stockCreated,
			UpdatedAt:       *stockSaved,
		}
	}
	return &ing, nil
}
