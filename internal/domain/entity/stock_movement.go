package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementEntry             = "ENTRADA"       // entrada de mercancía
	MovementRecipeConsumption = "SAIDA_RECEITA" // consumo por producción
	MovementLoss              = "SAIDA_PERDA"   // pérdida o desperdicio
	MovementOrderConsumption  = "SAIDA_PEDIDO"  // consumo por pedido finalizado
)

// Motivos de pérdida.
const (
	LossExpired      = "EXPIRED"
	LossDeteriorated = "DETERIORATED"
	LossContaminated = "CONTAMINATED"
	LossBreakage     = "BREAKAGE"
	LossPrepWaste    = "PREP_WASTE"
	LossOther        = "OTHER"
)

// IsValidLossReason indica si el motivo es uno de los definidos.
func IsValidLossReason(reason string) bool {
	switch reason {
	case LossExpired, LossDeteriorated, LossContaminated, LossBreakage, LossPrepWaste, LossOther:
		return true
	}
	return false
}

// StockMovement fila del libro de movimientos: inmutable, Quantity siempre > 0.
// Un consumo con desperdicio genera dos filas (consumo + SAIDA_PERDA).
type StockMovement struct {
	ID             string
	StockID        string
	Type           string
	Quantity       decimal.Decimal
	Reason         string           // solo SAIDA_PERDA
	CostPerUnit    *decimal.Decimal // solo ENTRADA
	Supplier       string           // solo ENTRADA
	ExpirationDate *time.Time       // solo ENTRADA
	Observation    string
	UserID         string
	CreatedAt      time.Time
}
