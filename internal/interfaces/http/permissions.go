package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
)

// Acciones protegidas por RequirePermission.
const (
	PermRestaurantManage = "restaurant:manage"
	PermCatalogRead      = "catalog:read"
	PermCatalogWrite     = "catalog:write"
	PermStockRead        = "stock:read"
	PermStockWrite       = "stock:write"
	PermStockLoss        = "stock:loss"
	PermProductionRun    = "production:run"
	PermOrderRead        = "order:read"
	PermOrderWrite       = "order:write"
	PermOrderStatus      = "order:status"
	PermOrderComplete    = "order:complete"
	PermNotificationRead = "notification:read"
)

// permissions tabla rol -> acciones. DEVELOPER se resuelve aparte: puede todo.
var permissions = map[string][]string{
	entity.RoleAdmin: {
		PermCatalogRead, PermCatalogWrite,
		PermStockRead, PermStockWrite, PermStockLoss,
		PermProductionRun,
		PermOrderRead, PermOrderWrite, PermOrderStatus, PermOrderComplete,
		PermNotificationRead,
	},
	entity.RoleKitchen: {
		PermCatalogRead,
		PermStockRead, PermStockLoss,
		PermProductionRun,
		PermOrderRead, PermOrderStatus, PermOrderComplete,
		PermNotificationRead,
	},
	entity.RoleWaiter: {
		PermCatalogRead,
		PermOrderRead, PermOrderWrite, PermOrderStatus,
	},
}

// Can indica si el rol tiene la acción.
func Can(role, action string) bool {
	if role == entity.RoleDeveloper {
		return true
	}
	for _, a := range permissions[role] {
		if a == action {
			return true
		}
	}
	return false
}

// RequirePermission devuelve un middleware que verifica la acción contra la tabla de permisos.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 si el token no trae rol.
//   - 403 si el rol no tiene la acción.
func RequirePermission(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "rol no encontrado en el token",
			})
		}
		if !Can(role, action) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "el rol " + role + " no puede realizar '" + action + "'",
			})
		}
		return c.Next()
	}
}
