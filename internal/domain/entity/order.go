package entity

import (
	"fmt"
	"time"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/shopspring/decimal"
)

// Estados del pedido.
const (
	OrderPending    = "PENDING"
	OrderInProgress = "IN_PROGRESS"
	OrderCompleted  = "COMPLETED"
	OrderCancelled  = "CANCELLED"
)

// OrderStatuses estados válidos en orden de ciclo de vida.
var OrderStatuses = []string{OrderPending, OrderInProgress, OrderCompleted, OrderCancelled}

// IsValidOrderStatus indica si el estado es uno de los cuatro definidos.
func IsValidOrderStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Order pedido de un restaurante. COMPLETED y CANCELLED son terminales.
type Order struct {
	ID           string
	RestaurantID string
	UserID       string
	Status       string
	TotalAmount  decimal.Decimal
	CancelReason string
	Items        []OrderItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
	CancelledAt  *time.Time
}

// OrderItem línea del pedido.
type OrderItem struct {
	ID           string
	OrderID      string
	ProductID    string
	ProductName  string
	Quantity     int
	UnitPrice    decimal.Decimal
	Additional   string // nota libre
	Observations string
	Additionals  []OrderItemAdditional
}

// OrderItemAdditional ingrediente extra cobrado y consumido fuera de la receta del producto.
// Quantity es absoluta: no se multiplica por la cantidad de la línea.
type OrderItemAdditional struct {
	ID           string
	OrderItemID  string
	IngredientID string
	Quantity     decimal.Decimal
	Unit         string
	Price        decimal.Decimal
}

// IsTerminal indica si el pedido ya no admite transiciones.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderCompleted || o.Status == OrderCancelled
}

// CanTransitionTo valida la transición al estado indicado.
func (o *Order) CanTransitionTo(status string) error {
	if !IsValidOrderStatus(status) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	switch o.Status {
	case OrderCompleted:
		return &OrderStateError{Status: o.Status, At: o.CompletedAt}
	case OrderCancelled:
		return &OrderStateError{Status: o.Status, At: o.CancelledAt}
	}
	return nil
}

// OrderStateError operación sobre un pedido en estado terminal.
type OrderStateError struct {
	Status string
	At     *time.Time // momento en que el pedido alcanzó el estado terminal
}

func (e *OrderStateError) Error() string {
	if e.Status == OrderCompleted && e.At != nil {
		return fmt.Sprintf("el pedido ya fue finalizado el %s", e.At.Format(time.RFC3339))
	}
	return e.Unwrap().Error()
}

// Unwrap permite errors.Is con ErrOrderCompleted / ErrOrderCancelled.
func (e *OrderStateError) Unwrap() error {
	if e.Status == OrderCompleted {
		return domain.ErrOrderCompleted
	}
	return domain.ErrOrderCancelled
}
