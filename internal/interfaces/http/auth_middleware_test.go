package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	apphttp "github.com/LuizZonetti1/cafeterias-api/internal/interfaces/http"
	pkgjwt "github.com/LuizZonetti1/cafeterias-api/pkg/jwt"
)

const (
	testJWTSecret    = "test-secret-key-for-unit-tests"
	testUserID       = "00000000-0000-0000-0000-000000000001"
	testRestaurantID = "00000000-0000-0000-0000-000000000002"
	testIssuer       = "cafeterias-api-test"
	testExpMin       = 60
)

// buildTestApp aplicación mínima: AuthMiddleware + RequireRole + handler que responde 200.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c)})
		},
	)
	return app
}

// bearer genera un token para el rol en el restaurante de prueba.
func bearer(t *testing.T, role, restaurantID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{UserID: testUserID, RestaurantID: restaurantID, Role: role}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, bearer(t, entity.RoleAdmin, testRestaurantID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestRequireRole_MultiRol(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleKitchen)
	resp := doRequest(t, app, bearer(t, entity.RoleKitchen, testRestaurantID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "KITCHEN entra en una ruta ADMIN o KITCHEN")
}

func TestRequireRole_WaiterBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, bearer(t, entity.RoleWaiter, testRestaurantID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_TokenSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	resp := doRequest(t, app, bearer(t, "", testRestaurantID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_ROLE")
}

func TestAuthMiddleware_Rechazos(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)
	cases := map[string]string{
		"sin header":       "",
		"token malformado": "Bearer token.invalido.aqui",
		"sin esquema":      "Token abc",
		"bearer vacío":     "Bearer   ",
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, app, header)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id":       apphttp.GetUserID(c),
			"restaurant_id": apphttp.GetRestaurantID(c),
			"role":          apphttp.GetRole(c),
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", bearer(t, entity.RoleAdmin, testRestaurantID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, testRestaurantID, body["restaurant_id"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
}

func TestScopeRestaurant(t *testing.T) {
	app := fiber.New()
	app.Get("/scope", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.ScopeRestaurant(c))
	})
	get := func(header, query string) string {
		req := httptest.NewRequest(http.MethodGet, "/scope"+query, nil)
		req.Header.Set("Authorization", header)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		return string(b)
	}

	assert.Equal(t, testRestaurantID, get(bearer(t, entity.RoleAdmin, testRestaurantID), "?restaurantId=otro"),
		"un ADMIN no puede salir de su restaurante")
	assert.Equal(t, "otro", get(bearer(t, entity.RoleDeveloper, ""), "?restaurantId=otro"))
	assert.Equal(t, "", get(bearer(t, entity.RoleDeveloper, ""), ""), "DEVELOPER sin filtro")
}
