package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Inventario
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrStockConflict      = errors.New("el stock cambió concurrentemente, reintente")
	ErrMissingRecipe      = errors.New("el producto no tiene receta")
	ErrStockNotConfigured = errors.New("el ingrediente no tiene stock configurado")

	// Pedidos
	ErrInvalidStatus  = errors.New("estado de pedido inválido")
	ErrOrderCompleted = errors.New("el pedido ya fue finalizado")
	ErrOrderCancelled = errors.New("el pedido está cancelado")
)
