package entity

import "time"

// Restaurant representa el tenant del sistema: todo catálogo, stock y pedido pertenece a uno.
type Restaurant struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
