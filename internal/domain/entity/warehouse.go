package entity

import "time"

// Warehouse representa un almacén o despensa del restaurante donde se guardan ingredientes.
type Warehouse struct {
	ID           string
	RestaurantID string
	Name         string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
