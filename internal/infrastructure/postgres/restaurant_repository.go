package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var _ repository.RestaurantRepository = (*RestaurantRepo)(nil)

// RestaurantRepo implementación del puerto RestaurantRepository sobre PostgreSQL.
type RestaurantRepo struct {
	q Querier
}

// NewRestaurantRepository construye el adaptador de persistencia para restaurantes.
func NewRestaurantRepository(q Querier) *RestaurantRepo {
	return &RestaurantRepo{q: q}
}

// Create persiste un nuevo restaurante.
func (r *RestaurantRepo) Create(ctx context.Context, rest *entity.Restaurant) error {
	query := `
		INSERT INTO restaurants (id, name, address, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, rest.ID, rest.Name, rest.Address, rest.Phone, rest.CreatedAt, rest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert restaurant: %w", err)
	}
	return nil
}

// GetByID obtiene un restaurante por ID. (nil, nil) si no existe.
func (r *RestaurantRepo) GetByID(ctx context.Context, id string) (*entity.Restaurant, error) {
	query := `SELECT id, name, address, phone, created_at, updated_at FROM restaurants WHERE id = $1`
	var rest entity.Restaurant
	err := r.q.QueryRow(ctx, query, id).Scan(
		&rest.ID, &rest.Name, &rest.Address, &rest.Phone, &rest.CreatedAt, &rest.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get restaurant: %w", err)
	}
	return &rest, nil
}

// List lista restaurantes por nombre.
func (r *RestaurantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Restaurant, error) {
	query := `
		SELECT id, name, address, phone, created_at, updated_at
		FROM restaurants ORDER BY name LIMIT NULLIF($1::int, 0) OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Restaurant
	for rows.Next() {
		var rest entity.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Phone, &rest.CreatedAt, &rest.UpdatedAt); err != nil {
			return nil, err
		}
		list = append(list, &rest)
	}
	return list, rows.Err()
}
