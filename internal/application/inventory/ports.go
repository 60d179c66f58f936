package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Stocks      repository.StockRepository
	Movements   repository.StockMovementRepository
	Ingredients repository.IngredientRepository
	Orders      repository.OrderRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback: ninguna escritura de fn queda persistida.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error) error
}

// LowStockAlert ingrediente que quedó en o por debajo del mínimo.
type LowStockAlert struct {
	RestaurantID   string
	IngredientID   string
	IngredientName string
	Unit           string
	Level          string // exhausted | low
	Current        decimal.Decimal
	Minimum        decimal.Decimal
}

// LowStockNotifier recibe las alertas después del commit. No devuelve error:
// una falla al notificar nunca revierte ni falla el consumo.
type LowStockNotifier interface {
	NotifyLowStock(ctx context.Context, alert LowStockAlert)
}

// OverviewCache caché del resumen de stock por restaurante. Get devuelve (nil, nil) si no hay entrada.
type OverviewCache interface {
	GetOverview(ctx context.Context, restaurantID string) (*dto.StockOverviewResponse, error)
	SetOverview(ctx context.Context, restaurantID string, v *dto.StockOverviewResponse) error
	InvalidateOverview(ctx context.Context, restaurantID string) error
}

// Metrics contadores del motor de consumo.
type Metrics interface {
	ConsumptionCommitted(source string, ingredients int)
	ConsumptionRejected(source, reason string)
	LowStockRaised(level string)
}

// NopNotifier, NopCache y NopMetrics se usan cuando el colaborador está desactivado.
type (
	NopNotifier struct{}
	NopCache    struct{}
	NopMetrics  struct{}
)

func (NopNotifier) NotifyLowStock(context.Context, LowStockAlert) {}

func (NopCache) GetOverview(context.Context, string) (*dto.StockOverviewResponse, error) {
	return nil, nil
}
func (NopCache) SetOverview(context.Context, string, *dto.StockOverviewResponse) error { return nil }
func (NopCache) InvalidateOverview(context.Context, string) error                      { return nil }

func (NopMetrics) ConsumptionCommitted(string, int)   {}
func (NopMetrics) ConsumptionRejected(string, string) {}
func (NopMetrics) LowStockRaised(string)              {}
