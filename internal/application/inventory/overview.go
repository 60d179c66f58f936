package inventory

import (
	"context"
	"fmt"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
)

// Overview resumen de solo lectura del stock de cada ingrediente del restaurante.
// Se sirve desde la caché cuando hay entrada; toda mutación de stock la invalida.
func (uc *StockUseCase) Overview(ctx context.Context, restaurantID string) (*dto.StockOverviewResponse, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("%w: restaurantId es requerido", domain.ErrInvalidInput)
	}
	if cached, err := uc.cache.GetOverview(ctx, restaurantID); err != nil {
		uc.log.Warn().Err(err).Str("restaurant_id", restaurantID).Msg("caché del resumen no disponible")
	} else if cached != nil {
		return cached, nil
	}

	ingredients, err := uc.ingredients.ListByRestaurant(ctx, restaurantID, "")
	if err != nil {
		return nil, err
	}
	usage, err := uc.products.RecipeUsage(ctx, restaurantID)
	if err != nil {
		return nil, err
	}

	out := &dto.StockOverviewResponse{
		RestaurantID: restaurantID,
		Ingredients:  make([]dto.OverviewItem, 0, len(ingredients)),
	}
	for _, ing := range ingredients {
		item := dto.OverviewItem{
			IngredientID:  ing.ID,
			Ingredient:    ing.Name,
			Unit:          ing.Unit,
			WarehouseID:   ing.WarehouseID,
			Status:        domaininv.OverviewStatus(ing.Stock),
			UsedInRecipes: usage[ing.ID],
		}
		if item.UsedInRecipes == nil {
			item.UsedInRecipes = []string{}
		}
		if ing.Stock != nil {
			current, minimum, updated := ing.Stock.QuantityCurrent, ing.Stock.QuantityMinimum, ing.Stock.UpdatedAt
			item.CurrentStock, item.MinimumStock, item.LastUpdated = &current, &minimum, &updated
			out.Statistics.WithStock++
		} else {
			out.Statistics.WithoutStock++
		}
		switch item.Status {
		case domaininv.StatusLowStock:
			out.Statistics.LowStock++
		case domaininv.StatusOutOfStock:
			out.Statistics.OutOfStock++
		}
		out.Ingredients = append(out.Ingredients, item)
	}
	out.Statistics.Total = len(out.Ingredients)

	if err := uc.cache.SetOverview(ctx, restaurantID, out); err != nil {
		uc.log.Warn().Err(err).Str("restaurant_id", restaurantID).Msg("no se pudo guardar el resumen en caché")
	}
	return out, nil
}
