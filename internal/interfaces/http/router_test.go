package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/auth"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/notification"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/order"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/usecase"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/memory"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/pdf"
	apphttp "github.com/LuizZonetti1/cafeterias-api/internal/interfaces/http"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// apiFixture API completa sobre el store en memoria con un restaurante sembrado:
// pan (3, mínimo 2), carne (1000 g, mínimo 100) y una hamburguesa que usa 1 pan y 150 g de carne.
type apiFixture struct {
	app   *fiber.App
	store *memory.Store
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Restaurants().Create(ctx, &entity.Restaurant{ID: testRestaurantID, Name: "Café Central"}))
	seed := func(id, name, current, minimum, unit string) {
		require.NoError(t, s.Ingredients().Create(ctx, &entity.Ingredient{ID: id, RestaurantID: testRestaurantID, WarehouseID: "wh", Name: name, Unit: unit}))
		require.NoError(t, s.Stocks().Create(ctx, &entity.Stock{ID: "st-" + id, IngredientID: id, QuantityCurrent: d(current), QuantityMinimum: d(minimum)}))
	}
	seed("bun", "Pan", "3", "2", entity.UnitUnits)
	seed("meat", "Carne", "1000", "100", entity.UnitGrams)
	require.NoError(t, s.Products().Create(ctx, &entity.Product{
		ID: "burger", RestaurantID: testRestaurantID, Name: "Hamburguesa", Price: d("12.50"),
		Recipe: []entity.RecipeItem{
			{ID: "r1", ProductID: "burger", IngredientID: "bun", Quantity: d("1"), Unit: entity.UnitUnits},
			{ID: "r2", ProductID: "burger", IngredientID: "meat", Quantity: d("150"), Unit: entity.UnitGrams},
		},
	}))

	log := zerolog.Nop()
	notifications := notification.NewService(s.Notifications(), nil, log)
	consumer := inventory.NewConsumer(s, notifications, nil, nil, log)
	resolver := inventory.NewResolver(s.Products(), s.Ingredients())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:          auth.NewAuthUseCase(s.Users(), s.Restaurants(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		UserUC:          usecase.NewUserUseCase(s.Users()),
		RestaurantUC:    usecase.NewRestaurantUseCase(s.Restaurants()),
		WarehouseUC:     usecase.NewWarehouseUseCase(s.Warehouses()),
		CategoryUC:      usecase.NewCategoryUseCase(s.Categories()),
		IngredientUC:    usecase.NewIngredientUseCase(s, s.Ingredients(), s.Warehouses(), nil),
		ProductUC:       usecase.NewProductUseCase(s.Products(), s.Ingredients(), s.Categories()),
		StockUC:         inventory.NewStockUseCase(s, s.Ingredients(), s.Stocks(), s.Movements(), s.Products(), notifications, nil, log),
		ProductionUC:    inventory.NewProductionUseCase(resolver, consumer),
		ReplenishmentUC: inventory.NewReplenishmentUseCase(s.Ingredients()),
		OrderUC:         order.NewUseCase(s.Orders(), s.Products(), s.Ingredients(), s.Restaurants(), resolver, consumer, pdf.NewTicketGenerator(), log),
		Notifications:   notifications,
		JWTSecret:       testJWTSecret,
	})
	return &apiFixture{app: app, store: s}
}

// call lanza la petición con el rol indicado ("" = sin token) y decodifica la respuesta en out.
func (f *apiFixture) call(t *testing.T, method, path, role, body string, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if role != "" {
		req.Header.Set("Authorization", bearer(t, role, testRestaurantID))
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func TestRouter_SinTokenRetorna401(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodGet, "/api/orders", "", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_PermisosPorRol(t *testing.T) {
	f := newAPI(t)
	cases := []struct {
		name   string
		method string
		path   string
		role   string
		body   string
		want   int
	}{
		{"camarero no produce", http.MethodPost, "/api/production", entity.RoleWaiter, `{"productId":"burger","quantity":1}`, http.StatusForbidden},
		{"cocina no registra entradas", http.MethodPost, "/api/stock/bun/entries", entity.RoleKitchen, `{"quantity":5}`, http.StatusForbidden},
		{"admin no crea restaurantes", http.MethodPost, "/api/restaurants", entity.RoleAdmin, `{"name":"Otro"}`, http.StatusForbidden},
		{"camarero no ve notificaciones", http.MethodGet, "/api/notifications", entity.RoleWaiter, "", http.StatusForbidden},
		{"camarero lista pedidos", http.MethodGet, "/api/orders", entity.RoleWaiter, "", http.StatusOK},
		{"developer crea restaurantes", http.MethodPost, "/api/restaurants", entity.RoleDeveloper, `{"name":"Otro"}`, http.StatusCreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := f.call(t, tc.method, tc.path, tc.role, tc.body, nil)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestRouter_ProduccionSinStockDevuelveFaltantes(t *testing.T) {
	f := newAPI(t)
	var body dto.ShortageErrorResponse
	resp := f.call(t, http.MethodPost, "/api/production", entity.RoleKitchen, `{"productId":"burger","quantity":5}`, &body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	require.Len(t, body.MissingIngredients, 1, "solo el pan falta")
	assert.Equal(t, "bun", body.MissingIngredients[0].IngredientID)
	assert.True(t, d("2").Equal(body.MissingIngredients[0].Missing), "5 necesarios - 3 disponibles")
	assert.Empty(t, f.store.AllMovements(), "nada se descuenta")
}

func TestRouter_ProduccionDescuentaStock(t *testing.T) {
	f := newAPI(t)
	var body dto.ProductionResponse
	resp := f.call(t, http.MethodPost, "/api/production", entity.RoleKitchen, `{"productId":"burger","quantity":2}`, &body)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, body.Consumption, 2)
	assert.True(t, d("1").Equal(f.store.StockOf("bun").QuantityCurrent))
	assert.True(t, d("700").Equal(f.store.StockOf("meat").QuantityCurrent))
}

func TestRouter_CicloDePedido(t *testing.T) {
	f := newAPI(t)

	var created dto.OrderResponse
	resp := f.call(t, http.MethodPost, "/api/orders", entity.RoleWaiter, `{"items":[{"productId":"burger","quantity":1}]}`, &created)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, entity.OrderPending, created.Status)
	assert.True(t, d("3").Equal(f.store.StockOf("bun").QuantityCurrent), "crear no descuenta")

	var status dto.OrderResponse
	resp = f.call(t, http.MethodPatch, "/api/orders/"+created.ID+"/status", entity.RoleKitchen, `{"status":"IN_PROGRESS"}`, &status)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.OrderInProgress, status.Status)

	var done dto.OrderCompletionResponse
	resp = f.call(t, http.MethodPost, "/api/orders/"+created.ID+"/complete", entity.RoleKitchen, "", &done)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.OrderCompleted, done.Order.Status)
	assert.True(t, d("2").Equal(f.store.StockOf("bun").QuantityCurrent))
	require.Len(t, done.Warnings, 1, "el pan queda en el mínimo")

	var again dto.OrderStateErrorResponse
	resp = f.call(t, http.MethodPost, "/api/orders/"+created.ID+"/complete", entity.RoleKitchen, "", &again)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ORDER_FINALIZED", again.Code)
	assert.Equal(t, entity.OrderCompleted, again.Status)
	assert.NotNil(t, again.CompletedAt)

	var inbox dto.NotificationListResponse
	resp = f.call(t, http.MethodGet, "/api/notifications?unreadOnly=true", entity.RoleAdmin, "", &inbox)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, inbox.Items, 1)
	assert.Equal(t, "bun", inbox.Items[0].IngredientID)

	resp = f.call(t, http.MethodGet, "/api/orders/"+created.ID+"/ticket", entity.RoleKitchen, "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestRouter_CancelarPedidoCancelado(t *testing.T) {
	f := newAPI(t)
	var created dto.OrderResponse
	f.call(t, http.MethodPost, "/api/orders", entity.RoleWaiter, `{"items":[{"productId":"burger","quantity":1}]}`, &created)

	var cancelled dto.OrderResponse
	resp := f.call(t, http.MethodPost, "/api/orders/"+created.ID+"/cancel", entity.RoleWaiter, `{"reason":"cliente se fue"}`, &cancelled)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "cliente se fue", cancelled.CancelReason)

	var body dto.OrderStateErrorResponse
	resp = f.call(t, http.MethodPost, "/api/orders/"+created.ID+"/complete", entity.RoleKitchen, "", &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ORDER_CANCELLED", body.Code)
	assert.True(t, d("3").Equal(f.store.StockOf("bun").QuantityCurrent))
}

func TestRouter_PedidoInexistente(t *testing.T) {
	f := newAPI(t)
	var body dto.ErrorResponse
	resp := f.call(t, http.MethodGet, "/api/orders/no-existe", entity.RoleAdmin, "", &body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestRouter_CatalogoYStockManual(t *testing.T) {
	f := newAPI(t)

	var wh dto.WarehouseResponse
	resp := f.call(t, http.MethodPost, "/api/warehouses", entity.RoleAdmin, `{"name":"Cocina"}`, &wh)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var ing dto.IngredientResponse
	resp = f.call(t, http.MethodPost, "/api/ingredients", entity.RoleAdmin, `{"name":"Tomate","warehouseId":"`+wh.ID+`"}`, &ing)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, entity.UnitGrams, ing.Unit)
	require.NotNil(t, ing.Stock)
	assert.True(t, ing.Stock.Current.IsZero())

	resp = f.call(t, http.MethodPost, "/api/ingredients", entity.RoleAdmin, `{"name":" tomate ","warehouseId":"`+wh.ID+`"}`, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "nombre duplicado en el almacén")

	var entry dto.StockChangeResponse
	resp = f.call(t, http.MethodPost, "/api/stock/"+ing.ID+"/entries", entity.RoleAdmin, `{"quantity":500,"costPerUnit":0.02}`, &entry)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, d("500").Equal(entry.NewStock))

	var loss dto.ErrorResponse
	resp = f.call(t, http.MethodPost, "/api/stock/"+ing.ID+"/losses", entity.RoleKitchen, `{"quantity":900}`, &loss)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "la pérdida no puede superar el stock")

	var movements dto.MovementListResponse
	resp = f.call(t, http.MethodGet, "/api/stock/"+ing.ID+"/movements", entity.RoleAdmin, "", &movements)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, movements.Items, 1)

	var overview dto.StockOverviewResponse
	resp = f.call(t, http.MethodGet, "/api/stock/overview", entity.RoleKitchen, "", &overview)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_RegistroLoginYMe(t *testing.T) {
	f := newAPI(t)
	resp := f.call(t, http.MethodPost, "/api/auth/register", "",
		`{"email":"Ana@Cafe.com","password":"secreto123","name":"Ana","restaurantId":"`+testRestaurantID+`","role":"ADMIN"}`, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = f.call(t, http.MethodPost, "/api/auth/register", "",
		`{"email":"ana@cafe.com","password":"secreto123","restaurantId":"`+testRestaurantID+`"}`, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var login dto.LoginResponse
	resp = f.call(t, http.MethodPost, "/api/auth/login", "", `{"email":"ana@cafe.com","password":"secreto123"}`, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	meResp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer meResp.Body.Close()
	var me dto.UserResponse
	require.NoError(t, json.NewDecoder(meResp.Body).Decode(&me))
	assert.Equal(t, "ana@cafe.com", me.Email)
	assert.Equal(t, entity.RoleAdmin, me.Role)

	resp = f.call(t, http.MethodPost, "/api/auth/login", "", `{"email":"ana@cafe.com","password":"incorrecta"}`, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
