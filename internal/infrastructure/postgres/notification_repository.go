package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `id, restaurant_id, ingredient_id, type, message, is_read, created_at, read_at`

// NotificationRepo implementación del puerto NotificationRepository sobre PostgreSQL.
// La unicidad de no leídas la garantiza el índice parcial notifications_unread_uq.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de persistencia para notificaciones.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// CreateIfNoUnread inserta n salvo que ya exista una no leída equivalente; en ese caso la devuelve.
func (r *NotificationRepo) CreateIfNoUnread(ctx context.Context, n *entity.Notification) (*entity.Notification, bool, error) {
	query := `
		INSERT INTO notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, false, $6, NULL)
		ON CONFLICT (restaurant_id, ingredient_id, type) WHERE NOT is_read DO NOTHING`
	tag, err := r.q.Exec(ctx, query, n.ID, n.RestaurantID, n.IngredientID, n.Type, n.Message, n.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("insert notification: %w", err)
	}
	if tag.RowsAffected() == 1 {
		created := *n
		created.IsRead = false
		created.ReadAt = nil
		return &created, true, nil
	}

	existing, err := r.one(ctx, `
		SELECT `+notificationColumns+` FROM notifications
		WHERE restaurant_id = $1 AND ingredient_id = $2 AND type = $3 AND NOT is_read`,
		n.RestaurantID, n.IngredientID, n.Type,
	)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		// Se leyó entre el INSERT y el SELECT: no hay duplicado que devolver.
		return nil, false, fmt.Errorf("%w: notificación concurrente", domain.ErrConflict)
	}
	return existing, false, nil
}

// GetByID obtiene una notificación por ID.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	return r.one(ctx, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id)
}

// ListByRestaurant lista notificaciones, las más recientes primero.
func (r *NotificationRepo) ListByRestaurant(ctx context.Context, restaurantID string, unreadOnly bool) ([]*entity.Notification, error) {
	query := `
		SELECT ` + notificationColumns + `
		FROM notifications
		WHERE restaurant_id = $1 AND (NOT $2 OR NOT is_read)
		ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query, restaurantID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var list []*entity.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// Counts total y no leídas del restaurante.
func (r *NotificationRepo) Counts(ctx context.Context, restaurantID string) (int, int, error) {
	var total, unread int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE NOT is_read) FROM notifications WHERE restaurant_id = $1`,
		restaurantID,
	).Scan(&total, &unread)
	if err != nil {
		return 0, 0, fmt.Errorf("count notifications: %w", err)
	}
	return total, unread, nil
}

// MarkRead marca una notificación como leída. Idempotente.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = COALESCE(read_at, now()) WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca todas las no leídas del restaurante y devuelve cuántas cambiaron.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, restaurantID string) (int64, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE notifications SET is_read = true, read_at = now() WHERE restaurant_id = $1 AND NOT is_read`, restaurantID,
	)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Delete elimina una notificación.
func (r *NotificationRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteRead elimina las leídas del restaurante.
func (r *NotificationRepo) DeleteRead(ctx context.Context, restaurantID string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM notifications WHERE restaurant_id = $1 AND is_read`, restaurantID)
	if err != nil {
		return 0, fmt.Errorf("delete read notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *NotificationRepo) one(ctx context.Context, query string, args ...any) (*entity.Notification, error) {
	n, err := scanNotification(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return n, nil
}

func scanNotification(row pgx.Row) (*entity.Notification, error) {
	var n entity.Notification
	if err := row.Scan(
		&n.ID, &n.RestaurantID, &n.IngredientID, &n.Type, &n.Message, &n.IsRead, &n.CreatedAt, &n.ReadAt,
	); err != nil {
		return nil, err
	}
	return &n, nil
}
