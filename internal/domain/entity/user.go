package entity

import "time"

// Roles válidos para User.
const (
	RoleDeveloper = "DEVELOPER" // soporte de plataforma, acceso a todos los restaurantes
	RoleAdmin     = "ADMIN"
	RoleKitchen   = "KITCHEN"
	RoleWaiter    = "WAITER"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// IsValidRole indica si el rol es uno de los definidos.
func IsValidRole(role string) bool {
	switch role {
	case RoleDeveloper, RoleAdmin, RoleKitchen, RoleWaiter:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a un Restaurant).
type User struct {
	ID           string
	RestaurantID string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
