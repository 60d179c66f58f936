package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

// StockUseCase operaciones manuales de stock: entradas, pérdidas, mínimo, historial y resumen.
type StockUseCase struct {
	tx          TxRunner
	ingredients repository.IngredientRepository
	stocks      repository.StockRepository
	movements   repository.StockMovementRepository
	products    repository.ProductRepository
	notifier    LowStockNotifier
	cache       OverviewCache
	log         zerolog.Logger
	now         func() time.Time
}

// NewStockUseCase construye el caso de uso. notifier y cache pueden ser nil.
func NewStockUseCase(
	tx TxRunner,
	ingredients repository.IngredientRepository,
	stocks repository.StockRepository,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	notifier LowStockNotifier,
	cache OverviewCache,
	log zerolog.Logger,
) *StockUseCase {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if cache == nil {
		cache = NopCache{}
	}
	return &StockUseCase{
		tx: tx, ingredients: ingredients, stocks: stocks, movements: movements, products: products,
		notifier: notifier, cache: cache, log: log, now: time.Now,
	}
}

// loadIngredient obtiene el ingrediente con stock y verifica el restaurante.
// restaurantID vacío no restringe.
func (uc *StockUseCase) loadIngredient(ctx context.Context, restaurantID, ingredientID string) (*entity.Ingredient, error) {
	ing, err := uc.ingredients.GetByID(ctx, ingredientID)
	if err != nil {
		return nil, err
	}
	if ing == nil {
		return nil, domain.ErrNotFound
	}
	if restaurantID != "" && ing.RestaurantID != restaurantID {
		return nil, domain.ErrForbidden
	}
	if !ing.HasStock() {
		return nil, &domaininv.StockNotConfiguredError{IngredientID: ing.ID, IngredientName: ing.Name}
	}
	return ing, nil
}

// AddStock registra una entrada: bloquea la fila de stock (SELECT FOR UPDATE), recalcula el
// costo promedio si la entrada trae costo, suma la cantidad y guarda un movimiento ENTRADA.
func (uc *StockUseCase) AddStock(ctx context.Context, restaurantID, userID, ingredientID string, in dto.AddStockRequest) (*dto.StockChangeResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}
	if in.CostPerUnit != nil && in.CostPerUnit.IsNegative() {
		return nil, fmt.Errorf("%w: costPerUnit no puede ser negativo", domain.ErrInvalidInput)
	}
	ing, err := uc.loadIngredient(ctx, restaurantID, ingredientID)
	if err != nil {
		return nil, err
	}

	var (
		updated *entity.Stock
		mov     *entity.StockMovement
	)
	err = uc.tx.Run(ctx, func(repos TxRepos) error {
		stock, err := repos.Stocks.GetForUpdate(ctx, ing.ID)
		if err != nil {
			return err
		}
		if stock == nil {
			return &domaininv.StockNotConfiguredError{IngredientID: ing.ID, IngredientName: ing.Name}
		}
		avg := domaininv.WeightedAverageCost(stock.QuantityCurrent, stock.AverageCost, in.Quantity, in.CostPerUnit)
		updated, err = repos.Stocks.Increment(ctx, stock.ID, in.Quantity, avg, userID)
		if err != nil {
			return err
		}
		mov = &entity.StockMovement{
			ID:             uuid.New().String(),
			StockID:        stock.ID,
			Type:           entity.MovementEntry,
			Quantity:       in.Quantity,
			CostPerUnit:    in.CostPerUnit,
			Supplier:       in.Supplier,
			ExpirationDate: in.ExpirationDate,
			Observation:    in.Observation,
			UserID:         userID,
			CreatedAt:      uc.now(),
		}
		return repos.Movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.afterChange(ctx, ing, updated)
	return changeResponse(ing, updated, in.Quantity, updated.QuantityCurrent.Sub(in.Quantity), mov.ID), nil
}

// RegisterLoss registra una pérdida con motivo explícito (OTHER por defecto). Si la cantidad
// supera el stock actual devuelve *ShortageError sin modificar nada.
func (uc *StockUseCase) RegisterLoss(ctx context.Context, restaurantID, userID, ingredientID string, in dto.RegisterLossRequest) (*dto.StockChangeResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que 0", domain.ErrInvalidInput)
	}
	reason := in.Reason
	if reason == "" {
		reason = entity.LossOther
	}
	if !entity.IsValidLossReason(reason) {
		return nil, fmt.Errorf("%w: motivo de pérdida %q inválido", domain.ErrInvalidInput, reason)
	}
	ing, err := uc.loadIngredient(ctx, restaurantID, ingredientID)
	if err != nil {
		return nil, err
	}
	if ing.Stock.QuantityCurrent.LessThan(in.Quantity) {
		return nil, &domaininv.ShortageError{Shortages: []domaininv.Shortage{{
			IngredientID: ing.ID,
			Ingredient:   ing.Name,
			Needed:       in.Quantity,
			Available:    ing.Stock.QuantityCurrent,
			Missing:      in.Quantity.Sub(ing.Stock.QuantityCurrent),
			Unit:         ing.Unit,
		}}}
	}

	var (
		updated *entity.Stock
		mov     *entity.StockMovement
	)
	err = uc.tx.Run(ctx, func(repos TxRepos) error {
		var err error
		updated, err = repos.Stocks.Decrement(ctx, ing.Stock.ID, in.Quantity, userID)
		if err != nil {
			return err
		}
		if updated == nil {
			return fmt.Errorf("%w: %s", domain.ErrStockConflict, ing.Name)
		}
		mov = &entity.StockMovement{
			ID:          uuid.New().String(),
			StockID:     ing.Stock.ID,
			Type:        entity.MovementLoss,
			Quantity:    in.Quantity,
			Reason:      reason,
			Observation: in.Observation,
			UserID:      userID,
			CreatedAt:   uc.now(),
		}
		return repos.Movements.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}

	uc.afterChange(ctx, ing, updated)
	return changeResponse(ing, updated, in.Quantity.Neg(), updated.QuantityCurrent.Add(in.Quantity), mov.ID), nil
}

// SetMinimum sobrescribe el mínimo. No mueve stock ni genera movimiento.
func (uc *StockUseCase) SetMinimum(ctx context.Context, restaurantID, userID, ingredientID string, in dto.SetMinimumRequest) (*dto.StockResponse, error) {
	if in.Minimum.IsNegative() {
		return nil, fmt.Errorf("%w: el mínimo no puede ser negativo", domain.ErrInvalidInput)
	}
	ing, err := uc.loadIngredient(ctx, restaurantID, ingredientID)
	if err != nil {
		return nil, err
	}
	updated, err := uc.stocks.SetMinimum(ctx, ing.Stock.ID, in.Minimum, userID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	uc.invalidate(ctx, ing.RestaurantID)
	return ToStockResponse(updated), nil
}

// ListMovements historial del ingrediente, más recientes primero.
func (uc *StockUseCase) ListMovements(ctx context.Context, restaurantID, ingredientID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	ing, err := uc.loadIngredient(ctx, restaurantID, ingredientID)
	if err != nil {
		return nil, err
	}
	list, err := uc.movements.ListByStock(ctx, ing.Stock.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.MovementResponse{
			ID:             m.ID,
			Type:           m.Type,
			Quantity:       m.Quantity,
			Reason:         m.Reason,
			CostPerUnit:    m.CostPerUnit,
			Supplier:       m.Supplier,
			ExpirationDate: m.ExpirationDate,
			Observation:    m.Observation,
			UserID:         m.UserID,
			CreatedAt:      m.CreatedAt,
		})
	}
	return &dto.MovementListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// afterChange emite la alerta si el stock quedó en o bajo el mínimo e invalida la caché.
func (uc *StockUseCase) afterChange(ctx context.Context, ing *entity.Ingredient, updated *entity.Stock) {
	if level := domaininv.RestockLevel(updated.QuantityCurrent, updated.QuantityMinimum); level != "" {
		uc.notifier.NotifyLowStock(ctx, LowStockAlert{
			RestaurantID:   ing.RestaurantID,
			IngredientID:   ing.ID,
			IngredientName: ing.Name,
			Unit:           ing.Unit,
			Level:          level,
			Current:        updated.QuantityCurrent,
			Minimum:        updated.QuantityMinimum,
		})
	}
	uc.invalidate(ctx, ing.RestaurantID)
}

func (uc *StockUseCase) invalidate(ctx context.Context, restaurantID string) {
	if err := uc.cache.InvalidateOverview(ctx, restaurantID); err != nil {
		uc.log.Warn().Ctx(ctx).Err(err).Str("restaurant_id", restaurantID).Msg("no se pudo invalidar la caché del resumen de stock")
	}
}

func changeResponse(ing *entity.Ingredient, s *entity.Stock, change, previous decimal.Decimal, movementID string) *dto.StockChangeResponse {
	return &dto.StockChangeResponse{
		IngredientID:  ing.ID,
		Ingredient:    ing.Name,
		PreviousStock: previous,
		Change:        change,
		NewStock:      s.QuantityCurrent,
		Minimum:       s.QuantityMinimum,
		Unit:          ing.Unit,
		NeedsRestock:  s.NeedsRestock(),
		MovementID:    movementID,
	}
}

// ToStockResponse convierte la entidad al DTO.
func ToStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:            s.ID,
		IngredientID:  s.IngredientID,
		Current:       s.QuantityCurrent,
		Minimum:       s.QuantityMinimum,
		AverageCost:   s.AverageCost,
		LastUpdatedBy: s.LastUpdatedBy,
		UpdatedAt:     s.UpdatedAt,
	}
}
