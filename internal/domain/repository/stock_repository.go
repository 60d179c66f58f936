package repository

import (
	"context"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StockRepository define el puerto para leer y mutar el stock de ingredientes.
// Las mutaciones son escrituras atómicas de una sola fila; se usan dentro de TxRunner.
type StockRepository interface {
	Create(ctx context.Context, stock *entity.Stock) error
	GetByIngredient(ctx context.Context, ingredientID string) (*entity.Stock, error)
	// GetForUpdate obtiene el stock y bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, ingredientID string) (*entity.Stock, error)
	// Decrement resta amount solo si quantity_current >= amount en el momento de la escritura.
	// Devuelve (nil, nil) si la condición no se cumple: la fila no se modifica.
	Decrement(ctx context.Context, stockID string, amount decimal.Decimal, userID string) (*entity.Stock, error)
	// Increment suma amount y fija el costo promedio.
	Increment(ctx context.Context, stockID string, amount, averageCost decimal.Decimal, userID string) (*entity.Stock, error)
	SetMinimum(ctx context.Context, stockID string, minimum decimal.Decimal, userID string) (*entity.Stock, error)
}
