package entity

import "time"

// Category agrupa productos del menú (nombre único por restaurante).
type Category struct {
	ID           string
	RestaurantID string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
