package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, restaurant_id, COALESCE(category_id::text, ''), name, description, price, image_url, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// La receta vive en recipe_items y se carga en cada lectura.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste el producto con su receta en un mismo lote.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO products (id, restaurant_id, category_id, name, description, price, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.RestaurantID, nullable(p.CategoryID), p.Name, p.Description, p.Price, p.ImageURL, p.CreatedAt, p.UpdatedAt,
	)
	queueRecipe(b, p.ID, p.Recipe)
	if err := execBatch(ctx, r.q, b); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría o ingrediente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto con su receta.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id).Scan(
		&p.ID, &p.RestaurantID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	if err := r.loadRecipes(ctx, []*entity.Product{&p}); err != nil {
		return nil, err
	}
	return &p, nil
}

// GetByIDs carga varios productos con receta en dos consultas.
func (r *ProductRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	list, err := r.list(ctx, `SELECT `+productColumns+` FROM products WHERE id::text = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		out[p.ID] = p
	}
	return out, nil
}

// ListByRestaurant lista productos del restaurante por nombre.
func (r *ProductRepo) ListByRestaurant(ctx context.Context, restaurantID string, limit, offset int) ([]*entity.Product, error) {
	return r.list(ctx,
		`SELECT `+productColumns+` FROM products WHERE restaurant_id = $1 ORDER BY name LIMIT NULLIF($2::int, 0) OFFSET $3`,
		restaurantID, limit, offset,
	)
}

// Update actualiza los datos del producto sin tocar la receta.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, description = $4, price = $5, image_url = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, nullable(p.CategoryID), p.Name, p.Description, p.Price, p.ImageURL, p.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: categoría inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceRecipe borra e inserta las líneas de receta en un mismo lote.
func (r *ProductRepo) ReplaceRecipe(ctx context.Context, productID string, items []entity.RecipeItem) error {
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return fmt.Errorf("check product: %w", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	b := &pgx.Batch{}
	b.Queue(`DELETE FROM recipe_items WHERE product_id = $1`, productID)
	queueRecipe(b, productID, items)
	if err := execBatch(ctx, r.q, b); err != nil {
		return fmt.Errorf("replace recipe: %w", err)
	}
	return nil
}

// Delete elimina el producto; la receta cae en cascada.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: el producto está en pedidos", domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// IsReferencedByOrders indica si alguna línea de pedido apunta al producto.
func (r *ProductRepo) IsReferencedByOrders(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product references: %w", err)
	}
	return exists, nil
}

// RecipeUsage nombres de productos (ordenados) que usan cada ingrediente del restaurante.
func (r *ProductRepo) RecipeUsage(ctx context.Context, restaurantID string) (map[string][]string, error) {
	query := `
		SELECT ri.ingredient_id, p.name
		FROM recipe_items ri
		JOIN products p ON p.id = ri.product_id
		WHERE p.restaurant_id = $1
		ORDER BY ri.ingredient_id, p.name`
	rows, err := r.q.Query(ctx, query, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("recipe usage: %w", err)
	}
	defer rows.Close()

	out := map[string][]string{}
	for rows.Next() {
		var ingredientID, name string
		if err := rows.Scan(&ingredientID, &name); err != nil {
			return nil, err
		}
		out[ingredientID] = append(out[ingredientID], name)
	}
	return out, rows.Err()
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.RestaurantID, &p.CategoryID, &p.Name, &p.Description, &p.Price, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, &p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadRecipes(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// loadRecipes rellena Recipe de cada producto con una sola consulta.
func (r *ProductRepo) loadRecipes(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Product, len(products))
	ids := make([]string, 0, len(products))
	for _, p := range products {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}
	query := `
		SELECT id, product_id, ingredient_id, quantity, unit
		FROM recipe_items WHERE product_id::text = ANY($1)
		ORDER BY product_id, id`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("load recipes: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.RecipeItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.IngredientID, &it.Quantity, &it.Unit); err != nil {
			return err
		}
		if p := byID[it.ProductID]; p != nil {
			p.Recipe = append(p.Recipe, it)
		}
	}
	return rows.Err()
}

func queueRecipe(b *pgx.Batch, productID string, items []entity.RecipeItem) {
	for _, it := range items {
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		b.Queue(`
			INSERT INTO recipe_items (id, product_id, ingredient_id, quantity, unit)
			VALUES ($1, $2, $3, $4, $5)`,
			it.ID, productID, it.IngredientID, it.Quantity, it.Unit,
		)
	}
}
