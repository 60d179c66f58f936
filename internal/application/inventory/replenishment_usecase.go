package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

// idealFactor stock ideal = mínimo * 1.5.
var idealFactor = decimal.RequireFromString("1.5")

// ReplenishmentUseCase genera la lista de compra para los ingredientes en o bajo su mínimo.
type ReplenishmentUseCase struct {
	ingredients repository.IngredientRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(ingredients repository.IngredientRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{ingredients: ingredients}
}

// GenerateReplenishmentList devuelve los ingredientes que requieren reposición con la cantidad
// sugerida (ideal - actual) y el costo estimado al costo promedio. Prioridad 1 = menor
// proporción actual/mínimo. warehouseID vacío considera todos los almacenes.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, restaurantID, warehouseID string) ([]dto.ReplenishmentSuggestion, error) {
	ingredients, err := uc.ingredients.ListByRestaurant(ctx, restaurantID, warehouseID)
	if err != nil {
		return nil, err
	}

	type ranked struct {
		s     dto.ReplenishmentSuggestion
		ratio decimal.Decimal
	}
	var items []ranked
	for _, ing := range ingredients {
		if ing.Stock == nil || !ing.Stock.NeedsRestock() {
			continue
		}
		st := ing.Stock
		ideal := st.QuantityMinimum.Mul(idealFactor)
		suggested := ideal.Sub(st.QuantityCurrent)
		if !suggested.IsPositive() {
			continue
		}
		ratio := decimal.Zero
		if st.QuantityMinimum.IsPositive() {
			ratio = st.QuantityCurrent.Div(st.QuantityMinimum)
		}
		items = append(items, ranked{
			s: dto.ReplenishmentSuggestion{
				IngredientID:  ing.ID,
				Ingredient:    ing.Name,
				Unit:          ing.Unit,
				WarehouseID:   ing.WarehouseID,
				CurrentStock:  st.QuantityCurrent,
				MinimumStock:  st.QuantityMinimum,
				IdealStock:    ideal,
				SuggestedQty:  suggested,
				UnitCost:      st.AverageCost,
				EstimatedCost: suggested.Mul(st.AverageCost).Round(2),
			},
			ratio: ratio,
		})
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].ratio.LessThan(items[j].ratio) })
	out := make([]dto.ReplenishmentSuggestion, 0, len(items))
	for i, it := range items {
		it.s.Priority = i + 1
		out = append(out, it.s)
	}
	return out, nil
}
