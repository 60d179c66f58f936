package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

// IngredientUseCase alta, consulta y baja lógica de ingredientes.
type IngredientUseCase struct {
	tx          inventory.TxRunner
	ingredients repository.IngredientRepository
	warehouses  repository.WarehouseRepository
	cache       inventory.OverviewCache
}

// NewIngredientUseCase construye el caso de uso. cache puede ser nil.
func NewIngredientUseCase(tx inventory.TxRunner, ingredients repository.IngredientRepository, warehouses repository.WarehouseRepository, cache inventory.OverviewCache) *IngredientUseCase {
	if cache == nil {
		cache = inventory.NopCache{}
	}
	return &IngredientUseCase{tx: tx, ingredients: ingredients, warehouses: warehouses, cache: cache}
}

// Create crea el ingrediente y su stock inicial (actual 0, mínimo 50) en una transacción.
// El nombre normalizado es único por almacén.
func (uc *IngredientUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.WarehouseID == "" {
		return nil, fmt.Errorf("%w: name y warehouseId son requeridos", domain.ErrInvalidInput)
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.UnitGrams
	}
	if !entity.IsValidUnit(unit) {
		return nil, fmt.Errorf("%w: unidad %q inválida", domain.ErrInvalidInput, unit)
	}
	warehouse, err := uc.warehouses.GetByID(ctx, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, fmt.Errorf("%w: almacén %s", domain.ErrNotFound, in.WarehouseID)
	}
	if err := checkScope(restaurantID, warehouse.RestaurantID); err != nil {
		return nil, err
	}
	existing, err := uc.ingredients.FindByName(ctx, warehouse.ID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ya existe el ingrediente %q en el almacén", domain.ErrDuplicate, existing.Name)
	}

	now := time.Now()
	ing := &entity.Ingredient{
		ID:           uuid.New().String(),
		RestaurantID: warehouse.RestaurantID,
		WarehouseID:  warehouse.ID,
		Name:         name,
		Unit:         unit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stock := &entity.Stock{
		ID:              uuid.New().String(),
		IngredientID:    ing.ID,
		QuantityCurrent: decimal.Zero,
		QuantityMinimum: entity.DefaultMinimumStock,
		AverageCost:     decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	err = uc.tx.Run(ctx, func(repos inventory.TxRepos) error {
		if err := repos.Ingredients.Create(ctx, ing); err != nil {
			return err
		}
		return repos.Stocks.Create(ctx, stock)
	})
	if err != nil {
		return nil, err
	}
	ing.Stock = stock
	uc.invalidate(ctx, ing.RestaurantID)
	return toIngredientResponse(ing), nil
}

// GetByID obtiene un ingrediente con su stock.
func (uc *IngredientUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.IngredientResponse, error) {
	ing, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	return toIngredientResponse(ing), nil
}

// List ingredientes del restaurante; warehouseID vacío lista todos los almacenes.
func (uc *IngredientUseCase) List(ctx context.Context, restaurantID, warehouseID string) ([]dto.IngredientResponse, error) {
	if err := requireRestaurant(restaurantID); err != nil {
		return nil, err
	}
	list, err := uc.ingredients.ListByRestaurant(ctx, restaurantID, warehouseID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IngredientResponse, 0, len(list))
	for _, ing := range list {
		out = append(out, *toIngredientResponse(ing))
	}
	return out, nil
}

// Update cambia nombre y/o unidad. La unidad no puede cambiar si ya hay movimientos.
func (uc *IngredientUseCase) Update(ctx context.Context, restaurantID, id string, in dto.UpdateIngredientRequest) (*dto.IngredientResponse, error) {
	ing, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
		}
		if entity.NormalizeName(name) != entity.NormalizeName(ing.Name) {
			existing, err := uc.ingredients.FindByName(ctx, ing.WarehouseID, name)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != ing.ID {
				return nil, fmt.Errorf("%w: ya existe el ingrediente %q en el almacén", domain.ErrDuplicate, existing.Name)
			}
		}
		ing.Name = name
	}
	if in.Unit != nil && *in.Unit != ing.Unit {
		if !entity.IsValidUnit(*in.Unit) {
			return nil, fmt.Errorf("%w: unidad %q inválida", domain.ErrInvalidInput, *in.Unit)
		}
		moved, err := uc.ingredients.HasMovements(ctx, ing.ID)
		if err != nil {
			return nil, err
		}
		if moved {
			return nil, fmt.Errorf("%w: no se puede cambiar la unidad de un ingrediente con movimientos", domain.ErrConflict)
		}
		ing.Unit = *in.Unit
	}
	ing.UpdatedAt = time.Now()
	if err := uc.ingredients.Update(ctx, ing); err != nil {
		return nil, err
	}
	uc.invalidate(ctx, ing.RestaurantID)
	return toIngredientResponse(ing), nil
}

// Delete baja lógica: el stock y sus movimientos se conservan.
func (uc *IngredientUseCase) Delete(ctx context.Context, restaurantID, id string) error {
	ing, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return err
	}
	if err := uc.ingredients.SoftDelete(ctx, ing.ID); err != nil {
		return err
	}
	uc.invalidate(ctx, ing.RestaurantID)
	return nil
}

func (uc *IngredientUseCase) load(ctx context.Context, restaurantID, id string) (*entity.Ingredient, error) {
	ing, err := uc.ingredients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	if err := checkScope(restaurantID, ing.RestaurantID); err != nil {
		return nil, err
	}
	return ing, nil
}

func (uc *IngredientUseCase) invalidate(ctx context.Context, restaurantID string) {
	// la caché expira sola por TTL; un fallo aquí no invalida la operación
	_ = uc.cache.InvalidateOverview(ctx, restaurantID)
}

func toIngredientResponse(ing *entity.Ingredient) *dto.IngredientResponse {
	return &dto.IngredientResponse{
		ID:           ing.ID,
		RestaurantID: ing.RestaurantID,
		WarehouseID:  ing.WarehouseID,
		Name:         ing.Name,
		Unit:         ing.Unit,
		Stock:        inventory.ToStockResponse(ing.Stock),
		CreatedAt:    ing.CreatedAt,
	}
}
