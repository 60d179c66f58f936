package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
)

// ConsumptionReport convierte el resultado del motor al reporte JSON.
func ConsumptionReport(res *Result) ([]dto.ConsumptionItem, []dto.StockWarning) {
	items := make([]dto.ConsumptionItem, 0, len(res.Items))
	for _, it := range res.Items {
		items = append(items, dto.ConsumptionItem{
			IngredientID:  it.Ingredient.ID,
			Ingredient:    it.Ingredient.Name,
			PreviousStock: it.Previous,
			RecipeUsed:    it.Recipe,
			WasteUsed:     it.Waste,
			TotalConsumed: it.Total,
			NewStock:      it.New,
			Unit:          it.Ingredient.Unit,
			NeedsRestock:  it.Level != "",
			MovementIDs:   it.MovementIDs,
		})
	}
	warnings := make([]dto.StockWarning, 0, len(res.Alerts))
	for _, a := range res.Alerts {
		warnings = append(warnings, toWarning(a))
	}
	return items, warnings
}

func toWarning(a LowStockAlert) dto.StockWarning {
	return dto.StockWarning{
		IngredientID: a.IngredientID,
		Ingredient:   a.IngredientName,
		Level:        a.Level,
		Current:      a.Current,
		Minimum:      a.Minimum,
		Unit:         a.Unit,
	}
}

// MissingIngredients convierte un *ShortageError al cuerpo de error 400.
func MissingIngredients(err *domaininv.ShortageError) []dto.MissingIngredient {
	out := make([]dto.MissingIngredient, 0, len(err.Shortages))
	for _, s := range err.Shortages {
		usedIn := make([]dto.UsedIn, 0, len(s.UsedIn))
		for _, u := range s.UsedIn {
			ui := dto.UsedIn{Product: u.ProductName, Quantity: u.Quantity, Needed: u.Needed, Source: u.Source}
			if u.Source == domaininv.SourceAdditional {
				price := u.Price
				ui.Price = &price
			}
			usedIn = append(usedIn, ui)
		}
		out = append(out, dto.MissingIngredient{
			IngredientID: s.IngredientID,
			Ingredient:   s.Ingredient,
			Needed:       s.Needed,
			Available:    s.Available,
			Missing:      s.Missing,
			Unit:         s.Unit,
			UsedIn:       usedIn,
		})
	}
	return out
}

// wastePercentage aplica el valor por defecto 0.
func wastePercentage(w *decimal.Decimal) decimal.Decimal {
	if w == nil {
		return decimal.Zero
	}
	return *w
}

// WastePercentage valida y normaliza el porcentaje de desperdicio opcional de una petición.
func WastePercentage(w *decimal.Decimal) (decimal.Decimal, error) {
	v := wastePercentage(w)
	if err := domaininv.ValidateWastePercentage(v); err != nil {
		return decimal.Zero, err
	}
	return v, nil
}
