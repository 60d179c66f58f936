package dto

import "time"

// NotificationResponse salida de una notificación.
type NotificationResponse struct {
	ID           string     `json:"id"`
	RestaurantID string     `json:"restaurantId"`
	IngredientID string     `json:"ingredientId"`
	Type         string     `json:"type"`
	Message      string     `json:"message"`
	IsRead       bool       `json:"isRead"`
	CreatedAt    time.Time  `json:"createdAt"`
	ReadAt       *time.Time `json:"readAt,omitempty"`
}

// NotificationSummary totales del buzón.
type NotificationSummary struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
	Read   int `json:"read"`
}

// NotificationListResponse listado de notificaciones del restaurante.
type NotificationListResponse struct {
	Items   []NotificationResponse `json:"items"`
	Summary NotificationSummary    `json:"summary"`
}

// CountResponse resultado de operaciones masivas.
type CountResponse struct {
	Count int64 `json:"count"`
}
