package entity

import "time"

// Tipos de notificación.
const (
	NotificationLowStock = "LOW_STOCK"
)

// Notification alerta para el restaurante. Solo puede existir una no leída
// por (ingrediente, tipo, restaurante).
type Notification struct {
	ID           string
	RestaurantID string
	IngredientID string
	Type         string
	Message      string
	IsRead       bool
	CreatedAt    time.Time
	ReadAt       *time.Time
}
