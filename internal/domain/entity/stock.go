package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinimumStock mínimo con el que nace el stock de un ingrediente nuevo.
var DefaultMinimumStock = decimal.NewFromInt(50)

// Stock cantidad disponible de un ingrediente (uno a uno con Ingredient).
// QuantityCurrent nunca es negativa.
type Stock struct {
	ID              string
	IngredientID    string
	QuantityCurrent decimal.Decimal
	QuantityMinimum decimal.Decimal
	AverageCost     decimal.Decimal // costo unitario promedio ponderado de las entradas con costo
	LastUpdatedBy   string          // UserID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NeedsRestock indica si la cantidad actual está en o por debajo del mínimo.
func (s *Stock) NeedsRestock() bool {
	return s.QuantityCurrent.LessThanOrEqual(s.QuantityMinimum)
}
