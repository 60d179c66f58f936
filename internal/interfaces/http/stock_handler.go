package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
)

// StockHandler operaciones manuales de stock, producción y vista general.
type StockHandler struct {
	stock         *inventory.StockUseCase
	production    *inventory.ProductionUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stock *inventory.StockUseCase, production *inventory.ProductionUseCase, replenishment *inventory.ReplenishmentUseCase) *StockHandler {
	return &StockHandler{stock: stock, production: production, replenishment: replenishment}
}

// AddStock godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        ingredientId  path  string               true  "ID del ingrediente"
// @Param        body          body  dto.AddStockRequest  true  "Cantidad y motivo"
// @Success      201  {object}  dto.StockChangeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/{ingredientId}/entries [post]
func (h *StockHandler) AddStock(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.stock.AddStock(c.UserContext(), ScopeRestaurant(c), GetUserID(c), c.Params("ingredientId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// RegisterLoss godoc
// @Summary      Registrar pérdida
// @Description  Rechaza con 400 si la cantidad supera el stock actual.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        ingredientId  path  string                   true  "ID del ingrediente"
// @Param        body          body  dto.RegisterLossRequest  true  "Cantidad y motivo"
// @Success      201  {object}  dto.StockChangeResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/{ingredientId}/losses [post]
func (h *StockHandler) RegisterLoss(c *fiber.Ctx) error {
	var in dto.RegisterLossRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.stock.RegisterLoss(c.UserContext(), ScopeRestaurant(c), GetUserID(c), c.Params("ingredientId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetMinimum godoc
// @Summary      Ajustar stock mínimo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        ingredientId  path  string                 true  "ID del ingrediente"
// @Param        body          body  dto.SetMinimumRequest  true  "Nuevo mínimo"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/{ingredientId}/minimum [put]
func (h *StockHandler) SetMinimum(c *fiber.Ctx) error {
	var in dto.SetMinimumRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.stock.SetMinimum(c.UserContext(), ScopeRestaurant(c), GetUserID(c), c.Params("ingredientId"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos de un ingrediente
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        ingredientId  path   string  true   "ID del ingrediente"
// @Param        limit         query  int     false  "Límite"
// @Param        offset        query  int     false  "Offset"
// @Success      200  {object}  dto.MovementListResponse
// @Router       /api/stock/{ingredientId}/movements [get]
func (h *StockHandler) ListMovements(c *fiber.Ctx) error {
	out, err := h.stock.ListMovements(c.UserContext(), ScopeRestaurant(c), c.Params("ingredientId"), parsePage(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Vista general del stock
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockOverviewResponse
// @Router       /api/stock/overview [get]
func (h *StockHandler) Overview(c *fiber.Ctx) error {
	out, err := h.stock.Overview(c.UserContext(), ScopeRestaurant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Ingredientes bajo el mínimo con la cantidad sugerida a comprar.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        warehouseId  query  string  false  "Filtrar por almacén"
// @Success      200  {array}  dto.ReplenishmentSuggestion
// @Router       /api/stock/replenishment [get]
func (h *StockHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext(), ScopeRestaurant(c), c.Query("warehouseId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Produce godoc
// @Summary      Registrar producción
// @Description  Descuenta los ingredientes de las recetas de forma atómica. Si falta stock responde 400 con el detalle.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProduceRequest  true  "Productos y cantidades"
// @Success      201  {object}  dto.ProductionResponse
// @Failure      400  {object}  dto.ShortageErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/production [post]
func (h *StockHandler) Produce(c *fiber.Ctx) error {
	var in dto.ProduceRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.production.Produce(c.UserContext(), ScopeRestaurant(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
