package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
)

// Contextos de consumo.
const (
	SourceOrder      = "order"
	SourceProduction = "production"
)

// Source contexto del consumo: define el tipo de movimiento y los textos de observación.
type Source struct {
	Kind             string // order | production
	Observation      string
	WasteObservation string
}

// MovementType tipo de movimiento del consumo base según el contexto.
func (s Source) MovementType() string {
	if s.Kind == SourceOrder {
		return entity.MovementOrderConsumption
	}
	return entity.MovementRecipeConsumption
}

// ConsumedIngredient resultado del consumo de un ingrediente.
type ConsumedIngredient struct {
	Ingredient  *entity.Ingredient
	Previous    decimal.Decimal
	Recipe      decimal.Decimal
	Waste       decimal.Decimal
	Total       decimal.Decimal
	New         decimal.Decimal
	Minimum     decimal.Decimal
	Level       string // exhausted | low | ""
	MovementIDs []string
}

// Result consumo confirmado de un lote.
type Result struct {
	Items  []ConsumedIngredient
	Alerts []LowStockAlert
}

// Engine aplica un plan de consumo ya validado usando repositorios de una transacción.
// Bloquea cada fila en el orden del plan (ID de ingrediente ascendente) y no revalida:
// la resta condicional es la última barrera contra consumo concurrente.
type Engine struct {
	now func() time.Time
}

// NewEngine construye el motor.
func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// Consume descuenta cada ingrediente del plan, registra el movimiento de consumo y, si hay
// desperdicio, un SAIDA_PERDA separado. Si alguna resta condicional no afecta filas devuelve
// domain.ErrStockConflict; el TxRunner revierte lo ya aplicado en el lote.
func (e *Engine) Consume(ctx context.Context, repos TxRepos, plan []domaininv.Consumption, src Source, userID string) (*Result, error) {
	res := &Result{Items: make([]ConsumedIngredient, 0, len(plan))}
	now := e.now()

	for _, c := range plan {
		ing := c.Need.Ingredient
		locked, err := repos.Stocks.GetForUpdate(ctx, ing.ID)
		if err != nil {
			return nil, err
		}
		if locked == nil {
			return nil, &domaininv.StockNotConfiguredError{IngredientID: ing.ID, IngredientName: ing.Name}
		}
		updated, err := repos.Stocks.Decrement(ctx, locked.ID, c.Total, userID)
		if err != nil {
			return nil, err
		}
		if updated == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrStockConflict, ing.Name)
		}

		item := ConsumedIngredient{
			Ingredient: ing,
			Previous:   locked.QuantityCurrent,
			Recipe:     c.Recipe,
			Waste:      c.Waste,
			Total:      c.Total,
			New:        updated.QuantityCurrent,
			Minimum:    updated.QuantityMinimum,
		}

		if c.Recipe.IsPositive() {
			m := &entity.StockMovement{
				ID:          uuid.New().String(),
				StockID:     ing.Stock.ID,
				Type:        src.MovementType(),
				Quantity:    c.Recipe,
				Observation: src.Observation,
				UserID:      userID,
				CreatedAt:   now,
			}
			if err := repos.Movements.Create(ctx, m); err != nil {
				return nil, err
			}
			item.MovementIDs = append(item.MovementIDs, m.ID)
		}
		if c.Waste.IsPositive() {
			m := &entity.StockMovement{
				ID:          uuid.New().String(),
				StockID:     ing.Stock.ID,
				Type:        entity.MovementLoss,
				Quantity:    c.Waste,
				Reason:      entity.LossPrepWaste,
				Observation: src.WasteObservation,
				UserID:      userID,
				CreatedAt:   now,
			}
			if err := repos.Movements.Create(ctx, m); err != nil {
				return nil, err
			}
			item.MovementIDs = append(item.MovementIDs, m.ID)
		}

		item.Level = domaininv.RestockLevel(item.New, item.Minimum)
		if item.Level != "" {
			res.Alerts = append(res.Alerts, LowStockAlert{
				RestaurantID:   ing.RestaurantID,
				IngredientID:   ing.ID,
				IngredientName: ing.Name,
				Unit:           ing.Unit,
				Level:          item.Level,
				Current:        item.New,
				Minimum:        item.Minimum,
			})
		}
		res.Items = append(res.Items, item)
	}
	return res, nil
}
