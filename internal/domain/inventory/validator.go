package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// QuantityScale decimales con que se almacenan cantidades de stock y movimientos (NUMERIC(14,4)).
const QuantityScale = 4

// ValidateWastePercentage exige 0 <= w <= 100.
func ValidateWastePercentage(w decimal.Decimal) error {
	if w.IsNegative() || w.GreaterThan(hundred) {
		return fmt.Errorf("%w: el porcentaje de desperdicio debe estar entre 0 y 100", domain.ErrInvalidInput)
	}
	return nil
}

// Consumption cantidades a consumir de un ingrediente: Total = Recipe + Waste.
type Consumption struct {
	Need   *Need
	Recipe decimal.Decimal
	Waste  decimal.Decimal
	Total  decimal.Decimal
}

// Plan calcula el consumo con desperdicio de cada necesidad, ordenado por ID de ingrediente.
// waste = recipe * w / 100. Recipe y Waste se redondean a QuantityScale antes de sumar, así
// los movimientos registrados suman exactamente lo descontado del stock.
func Plan(needs Needs, w decimal.Decimal) []Consumption {
	sorted := needs.Sorted()
	out := make([]Consumption, 0, len(sorted))
	for _, need := range sorted {
		recipe := need.Total.Round(QuantityScale)
		waste := recipe.Mul(w).Div(hundred).Round(QuantityScale)
		out = append(out, Consumption{
			Need:   need,
			Recipe: recipe,
			Waste:  waste,
			Total:  recipe.Add(waste),
		})
	}
	return out
}

// Shortage faltante de un ingrediente. Needed incluye el desperdicio.
type Shortage struct {
	IngredientID string
	Ingredient   string
	Needed       decimal.Decimal
	Available    decimal.Decimal
	Missing      decimal.Decimal
	Unit         string
	UsedIn       []SourceLine
}

// ShortageError uno o más ingredientes no alcanzan; ningún stock fue modificado.
type ShortageError struct {
	Shortages []Shortage
}

func (e *ShortageError) Error() string {
	names := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		names = append(names, s.Ingredient)
	}
	return fmt.Sprintf("stock insuficiente para: %s", strings.Join(names, ", "))
}

func (e *ShortageError) Unwrap() error { return domain.ErrInsufficientStock }

// Validate compara cada necesidad (más desperdicio) con el stock actual. Es de solo lectura:
// devuelve *ShortageError con todos los faltantes o el plan listo para consumir.
func Validate(needs Needs, w decimal.Decimal) ([]Consumption, error) {
	plan := Plan(needs, w)
	var shortages []Shortage
	for _, c := range plan {
		ing := c.Need.Ingredient
		available := ing.Stock.QuantityCurrent
		if available.LessThan(c.Total) {
			shortages = append(shortages, Shortage{
				IngredientID: ing.ID,
				Ingredient:   ing.Name,
				Needed:       c.Total,
				Available:    available,
				Missing:      c.Total.Sub(available),
				Unit:         ing.Unit,
				UsedIn:       c.Need.Breakdown,
			})
		}
	}
	if len(shortages) > 0 {
		return nil, &ShortageError{Shortages: shortages}
	}
	return plan, nil
}

// Niveles de reposición tras un consumo.
const (
	RestockExhausted = "exhausted"
	RestockLow       = "low"
)

// RestockLevel clasifica el stock resultante: "exhausted" si es 0, "low" si 0 < actual <= mínimo, "" si no requiere.
func RestockLevel(current, minimum decimal.Decimal) string {
	switch {
	case current.Sign() <= 0:
		return RestockExhausted
	case current.LessThanOrEqual(minimum):
		return RestockLow
	}
	return ""
}

// Estados del resumen de stock.
const (
	StatusOK         = "OK"
	StatusLowStock   = "LOW_STOCK"
	StatusOutOfStock = "OUT_OF_STOCK"
	StatusNoStock    = "NO_STOCK"
)

// OverviewStatus estado de un ingrediente para el resumen del restaurante.
func OverviewStatus(stock *entity.Stock) string {
	if stock == nil {
		return StatusNoStock
	}
	switch RestockLevel(stock.QuantityCurrent, stock.QuantityMinimum) {
	case RestockExhausted:
		return StatusOutOfStock
	case RestockLow:
		return StatusLowStock
	}
	return StatusOK
}
