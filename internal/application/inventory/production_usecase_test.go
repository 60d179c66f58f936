package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/memory"
)

func TestProduce_ConDesperdicio(t *testing.T) {
	f := newFixture(t)
	flour := seedIngredient(t, f.store, "flour", "Harina", "1000", "200")
	bread := seedProduct(t, f.store, "bread", "Pan", map[string]string{flour: "300"})

	res, err := f.produce.Produce(context.Background(), restID, userID, dto.ProduceRequest{
		ProductID: bread, Quantity: d("3"), WastePercentage: dp("10"),
	})
	require.NoError(t, err)
	require.Len(t, res.Consumption, 1)

	c := res.Consumption[0]
	assert.True(t, d("1000").Equal(c.PreviousStock))
	assert.True(t, d("900").Equal(c.RecipeUsed))
	assert.True(t, d("90").Equal(c.WasteUsed))
	assert.True(t, d("990").Equal(c.TotalConsumed))
	assert.True(t, d("10").Equal(c.NewStock))
	assert.True(t, c.NeedsRestock, "10 <= 200")
	assert.Len(t, c.MovementIDs, 2)

	assert.True(t, d("10").Equal(f.store.StockOf(flour).QuantityCurrent))

	movs := f.store.AllMovements()
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementRecipeConsumption, movs[0].Type)
	assert.True(t, d("900").Equal(movs[0].Quantity))
	assert.Equal(t, entity.MovementLoss, movs[1].Type)
	assert.Equal(t, entity.LossPrepWaste, movs[1].Reason)
	assert.True(t, d("90").Equal(movs[1].Quantity))

	require.Len(t, res.Warnings, 1)
	assert.Equal(t, domaininv.RestockLow, res.Warnings[0].Level)
	require.Len(t, f.notifier.Alerts(), 1)
	assert.Equal(t, 1, f.metrics.committed)
	assert.Equal(t, 1, f.cache.invalidated)
}

func TestProduce_MovimientosSumanLoDescontado(t *testing.T) {
	f := newFixture(t)
	flour := seedIngredient(t, f.store, "flour", "Harina", "10", "0")
	bread := seedProduct(t, f.store, "bread", "Pan", map[string]string{flour: "1"})

	res, err := f.produce.Produce(context.Background(), restID, userID, dto.ProduceRequest{
		ProductID: bread, Quantity: d("1"), WastePercentage: dp("12.345"),
	})
	require.NoError(t, err)
	require.Len(t, res.Consumption, 1)

	c := res.Consumption[0]
	assert.True(t, d("10").Equal(c.PreviousStock))
	assert.True(t, d("1").Equal(c.RecipeUsed))
	assert.True(t, d("0.1235").Equal(c.WasteUsed))
	assert.True(t, d("1.1235").Equal(c.TotalConsumed))
	assert.True(t, d("8.8765").Equal(c.NewStock))

	sum := decimal.Zero
	for _, m := range f.store.AllMovements() {
		assert.True(t, m.Quantity.Equal(m.Quantity.Round(domaininv.QuantityScale)))
		sum = sum.Add(m.Quantity)
	}
	decrement := d("10").Sub(f.store.StockOf(flour).QuantityCurrent)
	assert.True(t, sum.Equal(decrement), "movimientos %s, descontado %s", sum, decrement)
	assert.True(t, sum.Equal(c.TotalConsumed))
}

func TestProduce_StockInsuficienteNoModificaNada(t *testing.T) {
	f := newFixture(t)
	flour := seedIngredient(t, f.store, "flour", "Harina", "1000", "200")
	bread := seedProduct(t, f.store, "bread", "Pan", map[string]string{flour: "300"})

	_, err := f.produce.Produce(context.Background(), restID, userID, dto.ProduceRequest{
		ProductID: bread, Quantity: d("4"),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var se *domaininv.ShortageError
	require.ErrorAs(t, err, &se)
	require.Len(t, se.Shortages, 1)
	assert.True(t, d("1200").Equal(se.Shortages[0].Needed))
	assert.True(t, d("200").Equal(se.Shortages[0].Missing))

	missing := inventory.MissingIngredients(se)
	require.Len(t, missing, 1)
	require.Len(t, missing[0].UsedIn, 1)
	assert.Equal(t, "Pan", missing[0].UsedIn[0].Product)
	assert.Nil(t, missing[0].UsedIn[0].Price)

	assert.True(t, d("1000").Equal(f.store.StockOf(flour).QuantityCurrent))
	assert.Empty(t, f.store.AllMovements())
	assert.Equal(t, 1, f.metrics.rejected["insufficient_stock"])
	assert.Empty(t, f.notifier.Alerts())
}

func TestProduce_TodoONada(t *testing.T) {
	f := newFixture(t)
	flour := seedIngredient(t, f.store, "a-flour", "Harina", "1000", "0")
	salt := seedIngredient(t, f.store, "b-salt", "Sal", "5", "0")
	bread := seedProduct(t, f.store, "bread", "Pan", map[string]string{flour: "100", salt: "10"})

	_, err := f.produce.Produce(context.Background(), restID, userID, dto.ProduceRequest{ProductID: bread, Quantity: d("1")})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, d("1000").Equal(f.store.StockOf(flour).QuantityCurrent), "la harina alcanzaba pero no debe descontarse")
	assert.Empty(t, f.store.AllMovements())
}

func TestProduce_ConflictoConcurrenteRevierteElLote(t *testing.T) {
	f := newFixtureWithTx(t, func(s *memory.Store) inventory.TxRunner {
		return &racingTx{store: s, stockID: "st-b-salt", stolen: d("5")}
	})
	flour := seedIngredient(t, f.store, "a-flour", "Harina", "1000", "0")
	salt := seedIngredient(t, f.store, "b-salt", "Sal", "10", "0")
	bread := seedProduct(t, f.store, "bread", "Pan", map[string]string{flour: "100", salt: "10"})

	_, err := f.produce.Produce(context.Background(), restID, userID, dto.ProduceRequest{ProductID: bread, Quantity: d("1")})
	require.ErrorIs(t, err, domain.ErrStockConflict)

	// La harina se descontó primero dentro de la tx y debe volver a su valor.
	assert.True(t, d("1000").Equal(f.store.StockOf(flour).QuantityCurrent))
	assert.True(t, d("5").Equal(f.store.StockOf(salt).QuantityCurrent))
	assert.Empty(t, f.store.AllMovements())
	assert.Equal(t, 1, f.metrics.rejected["stock_conflict"])
	assert.Empty(t, f.notifier.Alerts())
}

func TestProduce_Validaciones(t *testing.T) {
	f := newFixture(t)
	flour := seedIngredient(t, f.store, "flour", "Harina", "1000", "0")
	bread := seedProduct(t, f.store, "bread", "Pan", map[string]string{flour: "100"})
	empty := seedProduct(t, f.store, "water", "Agua", nil)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.ProduceRequest
		want error
	}{
		{"sin producto", dto.ProduceRequest{Quantity: d("1")}, domain.ErrInvalidInput},
		{"cantidad cero", dto.ProduceRequest{ProductID: bread, Quantity: decimal.Zero}, domain.ErrInvalidInput},
		{"desperdicio mayor a 100", dto.ProduceRequest{ProductID: bread, Quantity: d("1"), WastePercentage: dp("101")}, domain.ErrInvalidInput},
		{"desperdicio negativo", dto.ProduceRequest{ProductID: bread, Quantity: d("1"), WastePercentage: dp("-1")}, domain.ErrInvalidInput},
		{"producto inexistente", dto.ProduceRequest{ProductID: "nope", Quantity: d("1")}, domain.ErrNotFound},
		{"sin receta", dto.ProduceRequest{ProductID: empty, Quantity: d("1")}, domain.ErrMissingRecipe},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.produce.Produce(ctx, restID, userID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := f.produce.Produce(ctx, "otro-restaurante", userID, dto.ProduceRequest{ProductID: bread, Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, f.store.AllMovements())
}

func TestProduce_IngredienteSinStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Ingredients().Create(ctx, &entity.Ingredient{
		ID: "yeast", RestaurantID: restID, WarehouseID: whID, Name: "Levadura", Unit: entity.UnitGrams,
	}))
	bread := seedProduct(t, f.store, "bread", "Pan", map[string]string{"yeast": "5"})

	_, err := f.produce.Produce(ctx, restID, userID, dto.ProduceRequest{ProductID: bread, Quantity: d("1")})
	assert.ErrorIs(t, err, domain.ErrStockNotConfigured)
}

func TestProduce_AgotadoGeneraAlertaExhausted(t *testing.T) {
	f := newFixture(t)
	flour := seedIngredient(t, f.store, "flour", "Harina", "300", "50")
	bread := seedProduct(t, f.store, "bread", "Pan", map[string]string{flour: "100"})

	res, err := f.produce.Produce(context.Background(), restID, userID, dto.ProduceRequest{ProductID: bread, Quantity: d("3")})
	require.NoError(t, err)
	assert.True(t, res.Consumption[0].NewStock.IsZero())
	require.Len(t, res.Warnings, 1)
	assert.Equal(t, domaininv.RestockExhausted, res.Warnings[0].Level)
	assert.Equal(t, 1, f.metrics.raised[domaininv.RestockExhausted])
	// sin desperdicio: un solo movimiento
	assert.Len(t, f.store.AllMovements(), 1)
}
