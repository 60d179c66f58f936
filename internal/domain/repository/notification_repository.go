package repository

import (
	"context"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// NotificationRepository define el puerto de persistencia para Notification.
type NotificationRepository interface {
	// CreateIfNoUnread inserta n salvo que exista una no leída del mismo
	// (ingrediente, tipo, restaurante); en ese caso devuelve la existente y created=false.
	CreateIfNoUnread(ctx context.Context, n *entity.Notification) (existing *entity.Notification, created bool, err error)
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListByRestaurant(ctx context.Context, restaurantID string, unreadOnly bool) ([]*entity.Notification, error)
	// Counts devuelve total y no leídas del restaurante.
	Counts(ctx context.Context, restaurantID string) (total, unread int, err error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, restaurantID string) (int64, error)
	Delete(ctx context.Context, id string) error
	DeleteRead(ctx context.Context, restaurantID string) (int64, error)
}
