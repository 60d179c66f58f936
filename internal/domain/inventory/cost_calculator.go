package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost costo medio tras una entrada de mercancía:
//
//	(actual*costoActual + entrada*costoEntrada) / (actual + entrada)
//
// Sin costo de entrada el promedio no cambia. Con stock resultante no positivo es 0.
func WeightedAverageCost(current, currentCost, incoming decimal.Decimal, incomingCost *decimal.Decimal) decimal.Decimal {
	if incomingCost == nil {
		return currentCost
	}
	total := current.Add(incoming)
	if !total.IsPositive() {
		return decimal.Zero
	}
	value := current.Mul(currentCost).Add(incoming.Mul(*incomingCost))
	return value.Div(total).Round(QuantityScale)
}
