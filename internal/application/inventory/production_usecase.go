package inventory

import (
	"context"
	"fmt"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
)

// ProductionUseCase produce unidades de un producto descontando los ingredientes de su receta.
type ProductionUseCase struct {
	resolver *Resolver
	consumer *Consumer
}

// NewProductionUseCase construye el caso de uso.
func NewProductionUseCase(resolver *Resolver, consumer *Consumer) *ProductionUseCase {
	return &ProductionUseCase{resolver: resolver, consumer: consumer}
}

// Produce valida la entrada, resuelve la receta, valida el stock de todos los ingredientes
// y consume en una transacción (SAIDA_RECEITA + SAIDA_PERDA por desperdicio).
// restaurantID vacío no restringe el restaurante del producto.
func (uc *ProductionUseCase) Produce(ctx context.Context, restaurantID, userID string, in dto.ProduceRequest) (*dto.ProductionResponse, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: productId es requerido", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la cantidad a producir debe ser mayor que 0", domain.ErrInvalidInput)
	}
	w, err := WastePercentage(in.WastePercentage)
	if err != nil {
		return nil, err
	}

	needs, products, err := uc.resolver.Resolve(ctx, restaurantID, []LineRequest{{ProductID: in.ProductID, Quantity: in.Quantity}})
	if err != nil {
		return nil, err
	}
	product := products[in.ProductID]

	src := Source{
		Kind:             SourceProduction,
		Observation:      fmt.Sprintf("Producción: %sx %s", in.Quantity.String(), product.Name),
		WasteObservation: fmt.Sprintf("Desperdicio en producción (%s%%) - %s", w.String(), product.Name),
	}
	res, err := uc.consumer.Commit(ctx, needs, w, src, userID, nil)
	if err != nil {
		return nil, err
	}

	items, warnings := ConsumptionReport(res)
	return &dto.ProductionResponse{
		ProductID:        product.ID,
		Product:          product.Name,
		QuantityProduced: in.Quantity,
		WastePercentage:  w,
		Consumption:      items,
		Warnings:         warnings,
	}, nil
}
