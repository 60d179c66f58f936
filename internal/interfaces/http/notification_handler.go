package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/notification"
)

// NotificationHandler bandeja de notificaciones del restaurante.
type NotificationHandler struct {
	svc *notification.Service
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(svc *notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List godoc
// @Summary      Listar notificaciones
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        unreadOnly  query  bool  false  "Solo no leídas"
// @Success      200  {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), ScopeRestaurant(c), c.QueryBool("unreadOnly", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkRead godoc
// @Summary      Marcar notificación como leída
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la notificación"
// @Success      200  {object}  dto.NotificationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	out, err := h.svc.MarkRead(c.UserContext(), ScopeRestaurant(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkAllRead godoc
// @Summary      Marcar todas como leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Router       /api/notifications/read-all [patch]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	out, err := h.svc.MarkAllRead(c.UserContext(), ScopeRestaurant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar notificación
// @Tags         notifications
// @Security     Bearer
// @Param        id   path  string  true  "ID de la notificación"
// @Success      204
// @Router       /api/notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), ScopeRestaurant(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteAllRead godoc
// @Summary      Eliminar las notificaciones leídas
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CountResponse
// @Router       /api/notifications/read [delete]
func (h *NotificationHandler) DeleteAllRead(c *fiber.Ctx) error {
	out, err := h.svc.DeleteAllRead(c.UserContext(), ScopeRestaurant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
