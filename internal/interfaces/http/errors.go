package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
)

// respondError traduce los errores de dominio a HTTP. Lo no reconocido es 500.
func respondError(c *fiber.Ctx, err error) error {
	var shortage *domaininv.ShortageError
	if errors.As(err, &shortage) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ShortageErrorResponse{
			Code:               "INSUFFICIENT_STOCK",
			Message:            err.Error(),
			MissingIngredients: inventory.MissingIngredients(shortage),
		})
	}

	var stateErr *entity.OrderStateError
	if errors.As(err, &stateErr) {
		body := dto.OrderStateErrorResponse{Code: "ORDER_FINALIZED", Message: err.Error(), Status: stateErr.Status}
		if stateErr.Status == entity.OrderCancelled {
			body.Code = "ORDER_CANCELLED"
		}
		if stateErr.Status == entity.OrderCompleted && stateErr.At != nil {
			at := stateErr.At.Format(time.RFC3339)
			body.CompletedAt = &at
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}

	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		status, code = fiber.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrStockConflict):
		status, code = fiber.StatusConflict, "STOCK_CONFLICT"
	case errors.Is(err, domain.ErrMissingRecipe):
		status, code = fiber.StatusBadRequest, "MISSING_RECIPE"
	case errors.Is(err, domain.ErrStockNotConfigured):
		status, code = fiber.StatusBadRequest, "STOCK_NOT_CONFIGURED"
	case errors.Is(err, domain.ErrInvalidStatus):
		status, code = fiber.StatusBadRequest, "INVALID_STATUS"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code = fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate):
		status, code = fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	}

	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// parsePage lee limit/offset de la query con los valores por defecto de dto.PageRequest.
func parsePage(c *fiber.Ctx) dto.PageRequest {
	page := dto.PageRequest{Limit: queryInt(c, "limit"), Offset: queryInt(c, "offset")}
	page.DefaultPage()
	return page
}

func queryInt(c *fiber.Ctx, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
