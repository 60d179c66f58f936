package order_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/order"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/memory"
)

const (
	restID = "rest-1"
	userID = "waiter-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store *memory.Store
	uc    *order.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Restaurants().Create(ctx, &entity.Restaurant{ID: restID, Name: "Café Central"}))

	seed := func(id, name, current, minimum, unit string) {
		require.NoError(t, s.Ingredients().Create(ctx, &entity.Ingredient{ID: id, RestaurantID: restID, WarehouseID: "wh", Name: name, Unit: unit}))
		require.NoError(t, s.Stocks().Create(ctx, &entity.Stock{ID: "st-" + id, IngredientID: id, QuantityCurrent: d(current), QuantityMinimum: d(minimum)}))
	}
	seed("bun", "Pan", "10", "2", entity.UnitUnits)
	seed("meat", "Carne", "1000", "100", entity.UnitGrams)
	seed("cheese", "Queso", "20", "0", entity.UnitUnits)

	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: "burger", RestaurantID: restID, Name: "Hamburguesa", Price: d("12.50"),
		Recipe: []entity.RecipeItem{
			{ID: "r1", ProductID: "burger", IngredientID: "bun", Quantity: d("1"), Unit: entity.UnitUnits},
			{ID: "r2", ProductID: "burger", IngredientID: "meat", Quantity: d("150"), Unit: entity.UnitGrams},
		},
	}))
	require.NoError(t, s.Products().Create(ctx, &entity.Product{ID: "foreign", RestaurantID: "rest-2", Name: "Ajeno", Price: d("1")}))

	consumer := inventory.NewConsumer(s, nil, nil, nil, zerolog.Nop())
	resolver := inventory.NewResolver(s.Products(), s.Ingredients())
	uc := order.NewUseCase(s.Orders(), s.Products(), s.Ingredients(), s.Restaurants(), resolver, consumer, &fakeTickets{}, zerolog.Nop())
	return &fixture{store: s, uc: uc}
}

type fakeTickets struct{}

func (fakeTickets) GenerateTicket(_ context.Context, o *entity.Order, r *entity.Restaurant) ([]byte, error) {
	return []byte(r.Name + ":" + o.ID), nil
}

func (f *fixture) createBurgerOrder(t *testing.T, qty int, cheese string) *dto.OrderResponse {
	t.Helper()
	item := dto.OrderItemRequest{ProductID: "burger", Quantity: qty}
	if cheese != "" {
		item.AdditionalIngredients = []dto.AdditionalRequest{{IngredientID: "cheese", Quantity: d(cheese), Price: d("2.00")}}
	}
	o, err := f.uc.Create(context.Background(), restID, userID, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{item}})
	require.NoError(t, err)
	return o
}

func TestCreate_CalculaTotalConAdicionales(t *testing.T) {
	f := newFixture(t)
	o := f.createBurgerOrder(t, 2, "5")

	assert.Equal(t, entity.OrderPending, o.Status)
	assert.True(t, d("27").Equal(o.TotalAmount), "12.50*2 + 2.00")
	require.Len(t, o.Items, 1)
	require.Len(t, o.Items[0].AdditionalIngredients, 1)
	assert.Equal(t, entity.UnitUnits, o.Items[0].AdditionalIngredients[0].Unit, "sin unidad toma la del ingrediente")
	assert.Empty(t, f.store.AllMovements(), "crear no consume stock")
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	cases := []struct {
		name string
		rid  string
		in   dto.CreateOrderRequest
		want error
	}{
		{"sin ítems", restID, dto.CreateOrderRequest{}, domain.ErrInvalidInput},
		{"cantidad cero", restID, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: "burger"}}}, domain.ErrInvalidInput},
		{"sin restaurante", "", dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: "burger", Quantity: 1}}}, domain.ErrInvalidInput},
		{"producto inexistente", restID, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: "nope", Quantity: 1}}}, domain.ErrNotFound},
		{"producto de otro restaurante", restID, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: "foreign", Quantity: 1}}}, domain.ErrForbidden},
		{"unidad inválida", restID, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{
			ProductID: "burger", Quantity: 1,
			AdditionalIngredients: []dto.AdditionalRequest{{IngredientID: "cheese", Quantity: d("1"), Unit: "KILOS"}},
		}}}, domain.ErrInvalidInput},
		{"adicional inexistente", restID, dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{
			ProductID: "burger", Quantity: 1,
			AdditionalIngredients: []dto.AdditionalRequest{{IngredientID: "nope", Quantity: d("1")}},
		}}}, domain.ErrNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Create(ctx, tc.rid, userID, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestComplete_ConsumeRecetaYAdicionales(t *testing.T) {
	f := newFixture(t)
	o := f.createBurgerOrder(t, 2, "5")

	res, err := f.uc.Complete(context.Background(), restID, userID, o.ID, dto.CompleteOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, res.Order.Status)
	assert.NotNil(t, res.Order.CompletedAt)
	require.Len(t, res.Consumption, 3)

	assert.True(t, d("8").Equal(f.store.StockOf("bun").QuantityCurrent))
	assert.True(t, d("700").Equal(f.store.StockOf("meat").QuantityCurrent))
	assert.True(t, d("15").Equal(f.store.StockOf("cheese").QuantityCurrent), "el adicional se descuenta una vez, sin multiplicar")

	movs := f.store.AllMovements()
	require.Len(t, movs, 3)
	for _, m := range movs {
		assert.Equal(t, entity.MovementOrderConsumption, m.Type)
		assert.Contains(t, m.Observation, o.ID)
	}
}

func TestComplete_ConDesperdicio(t *testing.T) {
	f := newFixture(t)
	o := f.createBurgerOrder(t, 1, "")
	w := d("10")

	res, err := f.uc.Complete(context.Background(), restID, userID, o.ID, dto.CompleteOrderRequest{WastePercentage: &w})
	require.NoError(t, err)
	assert.True(t, w.Equal(res.WastePercentage))
	assert.True(t, d("835").Equal(f.store.StockOf("meat").QuantityCurrent), "150 + 15 de desperdicio")

	var losses int
	for _, m := range f.store.AllMovements() {
		if m.Type == entity.MovementLoss {
			losses++
			assert.Equal(t, entity.LossPrepWaste, m.Reason)
		}
	}
	assert.Equal(t, 2, losses)
}

func TestComplete_StockInsuficienteNoCambiaEstado(t *testing.T) {
	f := newFixture(t)
	o := f.createBurgerOrder(t, 11, "")

	_, err := f.uc.Complete(context.Background(), restID, userID, o.ID, dto.CompleteOrderRequest{})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var se *domaininv.ShortageError
	require.ErrorAs(t, err, &se)
	// faltan pan (11 > 10) y carne (1650 > 1000)
	assert.Len(t, se.Shortages, 2)

	got, err := f.uc.Get(context.Background(), restID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, got.Status)
	assert.True(t, d("10").Equal(f.store.StockOf("bun").QuantityCurrent))
	assert.Empty(t, f.store.AllMovements())
}

func TestComplete_PedidoYaFinalizado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createBurgerOrder(t, 1, "")

	_, err := f.uc.Complete(ctx, restID, userID, o.ID, dto.CompleteOrderRequest{})
	require.NoError(t, err)

	_, err = f.uc.Complete(ctx, restID, userID, o.ID, dto.CompleteOrderRequest{})
	require.ErrorIs(t, err, domain.ErrOrderCompleted)
	var se *entity.OrderStateError
	require.ErrorAs(t, err, &se)
	require.NotNil(t, se.At)
	assert.WithinDuration(t, time.Now(), *se.At, time.Minute)
	assert.Len(t, f.store.AllMovements(), 2, "la segunda llamada no consume")

	_, err = f.uc.Cancel(ctx, restID, o.ID, dto.CancelOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrOrderCompleted)
}

func TestComplete_CambioConcurrenteDeEstadoRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createBurgerOrder(t, 1, "")

	// Otro proceso cancela el pedido después de la carga pero antes del commit.
	consumer := inventory.NewConsumer(&cancellingTx{store: f.store, orderID: o.ID}, nil, nil, nil, zerolog.Nop())
	resolver := inventory.NewResolver(f.store.Products(), f.store.Ingredients())
	uc := order.NewUseCase(f.store.Orders(), f.store.Products(), f.store.Ingredients(), f.store.Restaurants(), resolver, consumer, nil, zerolog.Nop())

	_, err := uc.Complete(ctx, restID, userID, o.ID, dto.CompleteOrderRequest{})
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.True(t, d("10").Equal(f.store.StockOf("bun").QuantityCurrent))
	assert.Empty(t, f.store.AllMovements())
}

// cancellingTx cancela el pedido justo antes de abrir la transacción.
type cancellingTx struct {
	store   *memory.Store
	orderID string
}

func (c *cancellingTx) Run(ctx context.Context, fn func(inventory.TxRepos) error) error {
	if _, err := c.store.Orders().TransitionStatus(ctx, c.orderID, []string{entity.OrderPending}, entity.OrderCancelled, "mesa se fue"); err != nil {
		return err
	}
	return c.store.Run(ctx, fn)
}

func TestUpdateStatus_Transiciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createBurgerOrder(t, 1, "")

	got, err := f.uc.UpdateStatus(ctx, restID, userID, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderInProgress})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderInProgress, got.Status)

	got, err = f.uc.UpdateStatus(ctx, restID, userID, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderPending})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, got.Status)
	assert.Empty(t, f.store.AllMovements(), "las transiciones simples no tocan stock")

	_, err = f.uc.UpdateStatus(ctx, restID, userID, o.ID, dto.UpdateOrderStatusRequest{Status: "SERVED"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	got, err = f.uc.UpdateStatus(ctx, restID, userID, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderCompleted})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, got.Status)
	assert.Len(t, f.store.AllMovements(), 2)
}

func TestCancel_MotivoPorDefectoYTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.createBurgerOrder(t, 1, "")

	got, err := f.uc.Cancel(ctx, restID, o.ID, dto.CancelOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, got.Status)
	assert.Equal(t, order.DefaultCancelReason, got.CancelReason)
	assert.NotNil(t, got.CancelledAt)

	_, err = f.uc.UpdateStatus(ctx, restID, userID, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderInProgress})
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
	_, err = f.uc.Complete(ctx, restID, userID, o.ID, dto.CompleteOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
	assert.Empty(t, f.store.AllMovements())
}

func TestList_ResumenPorEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.createBurgerOrder(t, 1, "")
	f.createBurgerOrder(t, 1, "")
	_, err := f.uc.Cancel(ctx, restID, a.ID, dto.CancelOrderRequest{Reason: "error"})
	require.NoError(t, err)

	list, err := f.uc.List(ctx, restID, entity.OrderPending, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 1, list.Summary[entity.OrderPending])
	assert.Equal(t, 1, list.Summary[entity.OrderCancelled])
	assert.Equal(t, 0, list.Summary[entity.OrderCompleted])

	_, err = f.uc.List(ctx, restID, "SERVED", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)

	_, err = f.uc.Get(ctx, "rest-2", a.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTicket(t *testing.T) {
	f := newFixture(t)
	o := f.createBurgerOrder(t, 1, "")
	pdf, err := f.uc.Ticket(context.Background(), restID, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Café Central:"+o.ID, string(pdf))
}
