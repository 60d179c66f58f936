package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ingredient(id, name, current, minimum string) *entity.Ingredient {
	return &entity.Ingredient{
		ID: id, Name: name, Unit: entity.UnitGrams,
		Stock: &entity.Stock{ID: "st-" + id, IngredientID: id, QuantityCurrent: d(current), QuantityMinimum: d(minimum)},
	}
}

func bread() *entity.Product {
	return &entity.Product{ID: "p-bread", Name: "Pan", Recipe: []entity.RecipeItem{
		{IngredientID: "flour", Quantity: d("300"), Unit: entity.UnitGrams},
	}}
}

// ── Resolve ──────────────────────────────────────────────────────────────────

func TestResolve_RecetaEscaladaPorCantidad(t *testing.T) {
	ings := map[string]*entity.Ingredient{"flour": ingredient("flour", "Harina", "1000", "200")}

	needs, err := inventory.Resolve([]inventory.Line{{Product: bread(), Quantity: d("3")}}, ings)
	require.NoError(t, err)

	require.Len(t, needs, 1)
	assert.True(t, needs["flour"].Total.Equal(d("900")))
	require.Len(t, needs["flour"].Breakdown, 1)
	assert.Equal(t, inventory.SourceRecipe, needs["flour"].Breakdown[0].Source)
}

func TestResolve_AdicionalNoSeEscala(t *testing.T) {
	ings := map[string]*entity.Ingredient{
		"flour":  ingredient("flour", "Harina", "1000", "200"),
		"cheese": ingredient("cheese", "Queso", "20", "2"),
	}
	line := inventory.Line{
		Product:  bread(),
		Quantity: d("2"),
		Additionals: []entity.OrderItemAdditional{
			{IngredientID: "cheese", Quantity: d("5"), Unit: entity.UnitUnits, Price: d("2.00")},
		},
	}

	needs, err := inventory.Resolve([]inventory.Line{line}, ings)
	require.NoError(t, err)

	require.Len(t, needs, 2, "receta y adicional son necesidades independientes")
	assert.True(t, needs["flour"].Total.Equal(d("600")))
	assert.True(t, needs["cheese"].Total.Equal(d("5")), "el adicional es absoluto, no se multiplica por 2")
	assert.Equal(t, inventory.SourceAdditional, needs["cheese"].Breakdown[0].Source)
	assert.True(t, needs["cheese"].Breakdown[0].Price.Equal(d("2")))
}

func TestResolve_ConsolidaMismoIngrediente(t *testing.T) {
	ings := map[string]*entity.Ingredient{"flour": ingredient("flour", "Harina", "5000", "200")}
	lines := []inventory.Line{
		{Product: bread(), Quantity: d("1")},
		{Product: bread(), Quantity: d("2"), Additionals: []entity.OrderItemAdditional{{IngredientID: "flour", Quantity: d("50")}}},
	}

	needs, err := inventory.Resolve(lines, ings)
	require.NoError(t, err)

	assert.True(t, needs["flour"].Total.Equal(d("950")))
	assert.Len(t, needs["flour"].Breakdown, 3)
}

func TestResolve_ProductoSinReceta(t *testing.T) {
	p := &entity.Product{ID: "p-x", Name: "Agua"}
	_, err := inventory.Resolve([]inventory.Line{{Product: p, Quantity: d("1")}}, nil)

	assert.ErrorIs(t, err, domain.ErrMissingRecipe)
	var mr *inventory.MissingRecipeError
	require.True(t, errors.As(err, &mr))
	assert.Equal(t, "Agua", mr.ProductName)
}

func TestResolve_IngredienteSinStock(t *testing.T) {
	ings := map[string]*entity.Ingredient{"flour": {ID: "flour", Name: "Harina"}}
	_, err := inventory.Resolve([]inventory.Line{{Product: bread(), Quantity: d("1")}}, ings)

	assert.ErrorIs(t, err, domain.ErrStockNotConfigured)
	assert.Contains(t, err.Error(), "Harina")
}

func TestResolve_IngredienteInexistente(t *testing.T) {
	_, err := inventory.Resolve([]inventory.Line{{Product: bread(), Quantity: d("1")}}, map[string]*entity.Ingredient{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestValidate_ConDesperdicio(t *testing.T) {
	ings := map[string]*entity.Ingredient{"flour": ingredient("flour", "Harina", "1000", "200")}
	needs, err := inventory.Resolve([]inventory.Line{{Product: bread(), Quantity: d("3")}}, ings)
	require.NoError(t, err)

	plan, err := inventory.Validate(needs, d("10"))
	require.NoError(t, err)

	require.Len(t, plan, 1)
	assert.True(t, plan[0].Recipe.Equal(d("900")))
	assert.True(t, plan[0].Waste.Equal(d("90")))
	assert.True(t, plan[0].Total.Equal(d("990")))
	assert.True(t, ings["flour"].Stock.QuantityCurrent.Equal(d("1000")), "validar no muta el stock")
}

func TestValidate_RedondeaAEscalaAlmacenada(t *testing.T) {
	ings := map[string]*entity.Ingredient{"flour": ingredient("flour", "Harina", "10", "0")}
	p := &entity.Product{ID: "p", Name: "Masa", Recipe: []entity.RecipeItem{
		{IngredientID: "flour", Quantity: d("1.5")},
	}}
	needs, err := inventory.Resolve([]inventory.Line{{Product: p, Quantity: d("0.33333")}}, ings)
	require.NoError(t, err)

	plan, err := inventory.Validate(needs, d("12.345"))
	require.NoError(t, err)
	require.Len(t, plan, 1)

	c := plan[0]
	assert.True(t, d("0.5").Equal(c.Recipe), "0.499995 se redondea a 4 decimales")
	assert.True(t, d("0.0617").Equal(c.Waste), "0.5 * 12.345 / 100 = 0.061725")
	assert.True(t, c.Recipe.Add(c.Waste).Equal(c.Total))
	for _, v := range []decimal.Decimal{c.Recipe, c.Waste, c.Total} {
		assert.True(t, v.Equal(v.Round(inventory.QuantityScale)), "%s excede la escala", v)
	}
}

func TestValidate_Faltante(t *testing.T) {
	ings := map[string]*entity.Ingredient{"flour": ingredient("flour", "Harina", "1000", "200")}
	needs, err := inventory.Resolve([]inventory.Line{{Product: bread(), Quantity: d("4")}}, ings)
	require.NoError(t, err)

	_, err = inventory.Validate(needs, decimal.Zero)

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	var se *inventory.ShortageError
	require.True(t, errors.As(err, &se))
	require.Len(t, se.Shortages, 1)
	s := se.Shortages[0]
	assert.Equal(t, "Harina", s.Ingredient)
	assert.True(t, s.Needed.Equal(d("1200")))
	assert.True(t, s.Available.Equal(d("1000")))
	assert.True(t, s.Missing.Equal(d("200")))
	assert.Len(t, s.UsedIn, 1)
}

func TestValidate_ReportaTodosLosFaltantes(t *testing.T) {
	p := &entity.Product{ID: "p", Name: "Torta", Recipe: []entity.RecipeItem{
		{IngredientID: "a", Quantity: d("10")},
		{IngredientID: "b", Quantity: d("10")},
		{IngredientID: "c", Quantity: d("1")},
	}}
	ings := map[string]*entity.Ingredient{
		"a": ingredient("a", "A", "5", "0"),
		"b": ingredient("b", "B", "5", "0"),
		"c": ingredient("c", "C", "5", "0"),
	}
	needs, err := inventory.Resolve([]inventory.Line{{Product: p, Quantity: d("1")}}, ings)
	require.NoError(t, err)

	_, err = inventory.Validate(needs, decimal.Zero)
	var se *inventory.ShortageError
	require.True(t, errors.As(err, &se))
	assert.Len(t, se.Shortages, 2)
}

func TestValidateWastePercentage(t *testing.T) {
	assert.NoError(t, inventory.ValidateWastePercentage(d("0")))
	assert.NoError(t, inventory.ValidateWastePercentage(d("100")))
	assert.ErrorIs(t, inventory.ValidateWastePercentage(d("-1")), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateWastePercentage(d("100.5")), domain.ErrInvalidInput)
}

// ── Clasificación ────────────────────────────────────────────────────────────

func TestRestockLevel(t *testing.T) {
	assert.Equal(t, inventory.RestockExhausted, inventory.RestockLevel(d("0"), d("10")))
	assert.Equal(t, inventory.RestockLow, inventory.RestockLevel(d("10"), d("200")))
	assert.Equal(t, inventory.RestockLow, inventory.RestockLevel(d("200"), d("200")))
	assert.Equal(t, "", inventory.RestockLevel(d("201"), d("200")))
}

func TestOverviewStatus(t *testing.T) {
	assert.Equal(t, inventory.StatusNoStock, inventory.OverviewStatus(nil))
	assert.Equal(t, inventory.StatusOutOfStock, inventory.OverviewStatus(&entity.Stock{QuantityCurrent: d("0"), QuantityMinimum: d("5")}))
	assert.Equal(t, inventory.StatusLowStock, inventory.OverviewStatus(&entity.Stock{QuantityCurrent: d("5"), QuantityMinimum: d("5")}))
	assert.Equal(t, inventory.StatusOK, inventory.OverviewStatus(&entity.Stock{QuantityCurrent: d("6"), QuantityMinimum: d("5")}))
}

func TestWeightedAverageCost(t *testing.T) {
	cost := d("4")
	got := inventory.WeightedAverageCost(d("100"), d("2"), d("100"), &cost)
	assert.True(t, got.Equal(d("3")), "promedio de 100@2 y 100@4 es 3, obtenido %s", got)

	assert.True(t, inventory.WeightedAverageCost(d("100"), d("2"), d("50"), nil).Equal(d("2")), "sin costo de entrada se conserva el actual")
	assert.True(t, inventory.WeightedAverageCost(d("0"), d("0"), d("0"), &cost).IsZero())
}
