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

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, restaurant_id, user_id, status, total_amount, cancel_reason, created_at, updated_at, completed_at, cancelled_at`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
// Líneas y adicionales se escriben en el mismo lote que la cabecera.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste el pedido con sus líneas y adicionales. Asigna IDs faltantes.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	b := &pgx.Batch{}
	b.Queue(`
		INSERT INTO orders (`+orderColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		o.ID, o.RestaurantID, o.UserID, o.Status, o.TotalAmount, o.CancelReason,
		o.CreatedAt, o.UpdatedAt, o.CompletedAt, o.CancelledAt,
	)
	for i := range o.Items {
		it := &o.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.OrderID = o.ID
		b.Queue(`
			INSERT INTO order_items (id, order_id, product_id, product_name, quantity, unit_price, additional, observations)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, o.ID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice, it.Additional, it.Observations,
		)
		for j := range it.Additionals {
			ad := &it.Additionals[j]
			if ad.ID == "" {
				ad.ID = uuid.New().String()
			}
			ad.OrderItemID = it.ID
			b.Queue(`
				INSERT INTO order_item_additionals (id, order_item_id, ingredient_id, quantity, unit, price)
				VALUES ($1, $2, $3, $4, $5, $6)`,
				ad.ID, it.ID, ad.IngredientID, ad.Quantity, ad.Unit, ad.Price,
			)
		}
	}
	if err := execBatch(ctx, r.q, b); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: producto o ingrediente inexistente", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido completo.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	if err := r.loadItems(ctx, []*entity.Order{o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List lista pedidos del restaurante, los más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE restaurant_id = $1 AND ($2::text = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT NULLIF($3::int, 0) OFFSET $4`
	rows, err := r.q.Query(ctx, query, f.RestaurantID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		list = append(list, o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.loadItems(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// CountByStatus conteo de pedidos del restaurante por estado.
func (r *OrderRepo) CountByStatus(ctx context.Context, restaurantID string) (map[string]int, error) {
	rows, err := r.q.Query(ctx, `SELECT status, COUNT(*) FROM orders WHERE restaurant_id = $1 GROUP BY status`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	return out, rows.Err()
}

// TransitionStatus UPDATE condicional sobre el estado actual. false si no aplicó.
func (r *OrderRepo) TransitionStatus(ctx context.Context, id string, from []string, to, reason string) (bool, error) {
	query := `
		UPDATE orders
		SET status = $3,
		    updated_at = now(),
		    completed_at = CASE WHEN $3 = 'COMPLETED' THEN now() ELSE completed_at END,
		    cancelled_at = CASE WHEN $3 = 'CANCELLED' THEN now() ELSE cancelled_at END,
		    cancel_reason = CASE WHEN $3 = 'CANCELLED' THEN $4 ELSE cancel_reason END
		WHERE id = $1 AND status = ANY($2)`
	tag, err := r.q.Exec(ctx, query, id, from, to, reason)
	if err != nil {
		return false, fmt.Errorf("transition order: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID, &o.RestaurantID, &o.UserID, &o.Status, &o.TotalAmount, &o.CancelReason,
		&o.CreatedAt, &o.UpdatedAt, &o.CompletedAt, &o.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// loadItems carga líneas y adicionales de los pedidos con dos consultas.
func (r *OrderRepo) loadItems(ctx context.Context, orders []*entity.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[string]*entity.Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, order_id, product_id, product_name, quantity, unit_price, additional, observations
		FROM order_items WHERE order_id::text = ANY($1)
		ORDER BY order_id, id`, ids)
	if err != nil {
		return fmt.Errorf("load order items: %w", err)
	}
	var items []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.Additional, &it.Observations,
		); err != nil {
			rows.Close()
			return err
		}
		items = append(items, it)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	additionals := map[string][]entity.OrderItemAdditional{}
	rows, err = r.q.Query(ctx, `
		SELECT a.id, a.order_item_id, a.ingredient_id, a.quantity, a.unit, a.price
		FROM order_item_additionals a
		JOIN order_items oi ON oi.id = a.order_item_id
		WHERE oi.order_id::text = ANY($1)
		ORDER BY a.order_item_id, a.id`, ids)
	if err != nil {
		return fmt.Errorf("load order additionals: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ad entity.OrderItemAdditional
		if err := rows.Scan(&ad.ID, &ad.OrderItemID, &ad.IngredientID, &ad.Quantity, &ad.Unit, &ad.Price); err != nil {
			return err
		}
		additionals[ad.OrderItemID] = append(additionals[ad.OrderItemID], ad)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, it := range items {
		it.Additionals = additionals[it.ID]
		if o := byID[it.OrderID]; o != nil {
			o.Items = append(o.Items, it)
		}
	}
	return nil
}
