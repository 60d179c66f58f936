package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

// LineRequest producto y cantidad a resolver, con adicionales opcionales.
type LineRequest struct {
	ProductID   string
	Quantity    decimal.Decimal
	Additionals []entity.OrderItemAdditional
}

// Resolver carga productos, recetas e ingredientes con su stock y los consolida en necesidades.
type Resolver struct {
	products    repository.ProductRepository
	ingredients repository.IngredientRepository
}

// NewResolver construye el resolvedor de recetas.
func NewResolver(products repository.ProductRepository, ingredients repository.IngredientRepository) *Resolver {
	return &Resolver{products: products, ingredients: ingredients}
}

// Resolve devuelve las necesidades por ingrediente y los productos cargados.
// restaurantID vacío no restringe el restaurante de los productos.
func (r *Resolver) Resolve(ctx context.Context, restaurantID string, reqs []LineRequest) (domaininv.Needs, map[string]*entity.Product, error) {
	ids := make([]string, 0, len(reqs))
	for _, req := range reqs {
		ids = append(ids, req.ProductID)
	}
	products, err := r.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	lines := make([]domaininv.Line, 0, len(reqs))
	for _, req := range reqs {
		p, ok := products[req.ProductID]
		if !ok {
			return nil, nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, req.ProductID)
		}
		if restaurantID != "" && p.RestaurantID != restaurantID {
			return nil, nil, domain.ErrForbidden
		}
		lines = append(lines, domaininv.Line{Product: p, Quantity: req.Quantity, Additionals: req.Additionals})
	}

	ingredients, err := r.ingredients.GetByIDs(ctx, domaininv.IngredientIDs(lines))
	if err != nil {
		return nil, nil, err
	}
	needs, err := domaininv.Resolve(lines, ingredients)
	if err != nil {
		return nil, nil, err
	}
	return needs, products, nil
}
