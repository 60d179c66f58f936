package inventory

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// Origen de una necesidad de ingrediente.
const (
	SourceRecipe     = "recipe"
	SourceAdditional = "additional"
)

// SourceLine aporte de una línea (receta o adicional) a la necesidad de un ingrediente.
type SourceLine struct {
	ProductName string
	Quantity    decimal.Decimal // unidades del producto; 1 para adicionales
	Needed      decimal.Decimal
	Source      string
	Price       decimal.Decimal // solo adicionales
}

// Need necesidad consolidada de un ingrediente. Ingredient.Stock nunca es nil.
type Need struct {
	Ingredient *entity.Ingredient
	Total      decimal.Decimal
	Breakdown  []SourceLine
}

// Needs necesidades indexadas por ID de ingrediente.
type Needs map[string]*Need

// Sorted devuelve las necesidades ordenadas por ID de ingrediente. El orden fijo
// hace que dos lotes concurrentes bloqueen filas de stock en la misma secuencia.
func (n Needs) Sorted() []*Need {
	ids := make([]string, 0, len(n))
	for id := range n {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*Need, 0, len(ids))
	for _, id := range ids {
		out = append(out, n[id])
	}
	return out
}

// Line producto a producir (o línea de pedido) con sus adicionales.
type Line struct {
	Product     *entity.Product
	Quantity    decimal.Decimal
	Additionals []entity.OrderItemAdditional
}

// MissingRecipeError el producto no tiene líneas de receta.
type MissingRecipeError struct {
	ProductID   string
	ProductName string
}

func (e *MissingRecipeError) Error() string {
	return fmt.Sprintf("el producto %q no tiene receta", e.ProductName)
}

func (e *MissingRecipeError) Unwrap() error { return domain.ErrMissingRecipe }

// StockNotConfiguredError el ingrediente no tiene fila de stock.
type StockNotConfiguredError struct {
	IngredientID   string
	IngredientName string
}

func (e *StockNotConfiguredError) Error() string {
	return fmt.Sprintf("el ingrediente %q no tiene stock configurado", e.IngredientName)
}

func (e *StockNotConfiguredError) Unwrap() error { return domain.ErrStockNotConfigured }

// Resolve expande recetas y adicionales en necesidades por ingrediente.
// ingredients debe contener todos los ingredientes referenciados (con su Stock cargado).
// Receta: Total += cantidad por unidad * Line.Quantity. Adicional: Total += cantidad absoluta.
func Resolve(lines []Line, ingredients map[string]*entity.Ingredient) (Needs, error) {
	needs := Needs{}
	add := func(ingredientID string, amount decimal.Decimal, src SourceLine) error {
		ing, ok := ingredients[ingredientID]
		if !ok || ing == nil {
			return fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, ingredientID)
		}
		if !ing.HasStock() {
			return &StockNotConfiguredError{IngredientID: ing.ID, IngredientName: ing.Name}
		}
		need, ok := needs[ingredientID]
		if !ok {
			need = &Need{Ingredient: ing, Total: decimal.Zero}
			needs[ingredientID] = need
		}
		need.Total = need.Total.Add(amount)
		need.Breakdown = append(need.Breakdown, src)
		return nil
	}

	for _, line := range lines {
		if line.Product == nil {
			return nil, fmt.Errorf("%w: producto inexistente", domain.ErrNotFound)
		}
		if len(line.Product.Recipe) == 0 {
			return nil, &MissingRecipeError{ProductID: line.Product.ID, ProductName: line.Product.Name}
		}
		for _, item := range line.Product.Recipe {
			needed := item.Quantity.Mul(line.Quantity)
			err := add(item.IngredientID, needed, SourceLine{
				ProductName: line.Product.Name,
				Quantity:    line.Quantity,
				Needed:      needed,
				Source:      SourceRecipe,
			})
			if err != nil {
				return nil, err
			}
		}
		for _, extra := range line.Additionals {
			err := add(extra.IngredientID, extra.Quantity, SourceLine{
				ProductName: line.Product.Name,
				Quantity:    decimal.NewFromInt(1),
				Needed:      extra.Quantity,
				Source:      SourceAdditional,
				Price:       extra.Price,
			})
			if err != nil {
				return nil, err
			}
		}
	}
	return needs, nil
}

// IngredientIDs IDs de ingredientes referenciados por recetas y adicionales de las líneas.
func IngredientIDs(lines []Line) []string {
	seen := map[string]bool{}
	var ids []string
	push := func(id string) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, line := range lines {
		if line.Product != nil {
			for _, item := range line.Product.Recipe {
				push(item.IngredientID)
			}
		}
		for _, extra := range line.Additionals {
			push(extra.IngredientID)
		}
	}
	return ids
}
