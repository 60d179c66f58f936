// Package order implementa el ciclo de vida de pedidos. Finalizar un pedido consume
// el stock de sus recetas y adicionales en la misma transacción que cambia el estado.
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

// DefaultCancelReason motivo cuando la cancelación no trae uno.
const DefaultCancelReason = "No informado"

var tracer = otel.Tracer("github.com/LuizZonetti1/cafeterias-api/internal/application/order")

// active estados desde los que un pedido puede finalizarse o cancelarse.
var active = []string{entity.OrderPending, entity.OrderInProgress}

// TicketGenerator genera la comanda de cocina en PDF.
type TicketGenerator interface {
	GenerateTicket(ctx context.Context, order *entity.Order, restaurant *entity.Restaurant) ([]byte, error)
}

// UseCase casos de uso de pedidos.
type UseCase struct {
	orders      repository.OrderRepository
	products    repository.ProductRepository
	ingredients repository.IngredientRepository
	restaurants repository.RestaurantRepository
	resolver    *inventory.Resolver
	consumer    *inventory.Consumer
	tickets     TicketGenerator
	log         zerolog.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso. tickets puede ser nil (comanda desactivada).
func NewUseCase(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	ingredients repository.IngredientRepository,
	restaurants repository.RestaurantRepository,
	resolver *inventory.Resolver,
	consumer *inventory.Consumer,
	tickets TicketGenerator,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		orders: orders, products: products, ingredients: ingredients, restaurants: restaurants,
		resolver: resolver, consumer: consumer, tickets: tickets, log: log, now: time.Now,
	}
}

// Create registra un pedido PENDING. total = Σ precio × cantidad + Σ precio de adicionales.
func (uc *UseCase) Create(ctx context.Context, restaurantID, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("%w: restaurantId es requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el pedido debe tener al menos un ítem", domain.ErrInvalidInput)
	}

	productIDs := make([]string, 0, len(in.Items))
	var ingredientIDs []string
	for i, it := range in.Items {
		if it.ProductID == "" {
			return nil, fmt.Errorf("%w: items[%d].productId es requerido", domain.ErrInvalidInput, i)
		}
		if it.Quantity <= 0 {
			return nil, fmt.Errorf("%w: items[%d].quantity debe ser mayor que 0", domain.ErrInvalidInput, i)
		}
		productIDs = append(productIDs, it.ProductID)
		for j, a := range it.AdditionalIngredients {
			if a.IngredientID == "" || !a.Quantity.IsPositive() {
				return nil, fmt.Errorf("%w: items[%d].additionalIngredients[%d] requiere ingredientId y cantidad > 0", domain.ErrInvalidInput, i, j)
			}
			if a.Unit != "" && !entity.IsValidUnit(a.Unit) {
				return nil, fmt.Errorf("%w: unidad %q inválida", domain.ErrInvalidInput, a.Unit)
			}
			if a.Price.IsNegative() {
				return nil, fmt.Errorf("%w: el precio del adicional no puede ser negativo", domain.ErrInvalidInput)
			}
			ingredientIDs = append(ingredientIDs, a.IngredientID)
		}
	}

	products, err := uc.products.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	ingredients, err := uc.ingredients.GetByIDs(ctx, ingredientIDs)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	o := &entity.Order{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		UserID:       userID,
		Status:       entity.OrderPending,
		TotalAmount:  decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, it := range in.Items {
		p, ok := products[it.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, it.ProductID)
		}
		if p.RestaurantID != restaurantID {
			return nil, fmt.Errorf("%w: el producto %s no pertenece al restaurante", domain.ErrForbidden, p.Name)
		}
		item := entity.OrderItem{
			ID:           uuid.New().String(),
			OrderID:      o.ID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			Quantity:     it.Quantity,
			UnitPrice:    p.Price,
			Additional:   it.Additional,
			Observations: it.Observations,
		}
		o.TotalAmount = o.TotalAmount.Add(p.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		for _, a := range it.AdditionalIngredients {
			ing, ok := ingredients[a.IngredientID]
			if !ok {
				return nil, fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, a.IngredientID)
			}
			if ing.RestaurantID != restaurantID {
				return nil, fmt.Errorf("%w: el ingrediente %s no pertenece al restaurante", domain.ErrForbidden, ing.Name)
			}
			unit := a.Unit
			if unit == "" {
				unit = ing.Unit
			}
			item.Additionals = append(item.Additionals, entity.OrderItemAdditional{
				ID:           uuid.New().String(),
				OrderItemID:  item.ID,
				IngredientID: ing.ID,
				Quantity:     a.Quantity,
				Unit:         unit,
				Price:        a.Price,
			})
			o.TotalAmount = o.TotalAmount.Add(a.Price)
		}
		o.Items = append(o.Items, item)
	}

	if err := uc.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	uc.log.Info().Ctx(ctx).Str("order_id", o.ID).Str("restaurant_id", restaurantID).Int("items", len(o.Items)).Msg("pedido creado")
	out := ToResponse(o)
	return &out, nil
}

// Get obtiene un pedido. restaurantID vacío no restringe.
func (uc *UseCase) Get(ctx context.Context, restaurantID, id string) (*dto.OrderResponse, error) {
	o, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	out := ToResponse(o)
	return &out, nil
}

// List pedidos del restaurante, más recientes primero, con conteo por estado.
func (uc *UseCase) List(ctx context.Context, restaurantID, status string, page dto.PageRequest) (*dto.OrderListResponse, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("%w: restaurantId es requerido", domain.ErrInvalidInput)
	}
	if status != "" && !entity.IsValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, status)
	}
	page.DefaultPage()
	list, err := uc.orders.List(ctx, repository.OrderFilter{RestaurantID: restaurantID, Status: status, Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		return nil, err
	}
	counts, err := uc.orders.CountByStatus(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	summary := make(map[string]int, len(entity.OrderStatuses))
	for _, s := range entity.OrderStatuses {
		summary[s] = counts[s]
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, ToResponse(o))
	}
	return &dto.OrderListResponse{Items: items, Summary: summary, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// UpdateStatus cambia el estado del pedido. COMPLETED finaliza con desperdicio 0 y CANCELLED
// cancela con el motivo por defecto; el resto de transiciones no toca el stock.
func (uc *UseCase) UpdateStatus(ctx context.Context, restaurantID, userID, id string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	if !entity.IsValidOrderStatus(in.Status) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidStatus, in.Status)
	}
	switch in.Status {
	case entity.OrderCompleted:
		res, err := uc.Complete(ctx, restaurantID, userID, id, dto.CompleteOrderRequest{})
		if err != nil {
			return nil, err
		}
		return &res.Order, nil
	case entity.OrderCancelled:
		return uc.Cancel(ctx, restaurantID, id, dto.CancelOrderRequest{})
	}

	o, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if err := o.CanTransitionTo(in.Status); err != nil {
		return nil, err
	}
	ok, err := uc.orders.TransitionStatus(ctx, o.ID, []string{o.Status}, in.Status, "")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: el pedido cambió de estado, reintente", domain.ErrConflict)
	}
	return uc.Get(ctx, restaurantID, id)
}

// Cancel cancela un pedido activo. No restaura stock.
func (uc *UseCase) Cancel(ctx context.Context, restaurantID, id string, in dto.CancelOrderRequest) (*dto.OrderResponse, error) {
	reason := in.Reason
	if reason == "" {
		reason = DefaultCancelReason
	}
	o, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if err := o.CanTransitionTo(entity.OrderCancelled); err != nil {
		return nil, err
	}
	ok, err := uc.orders.TransitionStatus(ctx, o.ID, active, entity.OrderCancelled, reason)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: el pedido cambió de estado, reintente", domain.ErrConflict)
	}
	uc.log.Info().Ctx(ctx).Str("order_id", o.ID).Str("reason", reason).Msg("pedido cancelado")
	return uc.Get(ctx, restaurantID, id)
}

// Complete finaliza el pedido: resuelve recetas y adicionales de todas las líneas, valida el
// stock y consume en una transacción que también cambia el estado a COMPLETED. Si algo falla
// ni el stock ni el estado cambian.
func (uc *UseCase) Complete(ctx context.Context, restaurantID, userID, id string, in dto.CompleteOrderRequest) (*dto.OrderCompletionResponse, error) {
	ctx, span := tracer.Start(ctx, "order.Complete")
	defer span.End()
	span.SetAttributes(attribute.String("order.id", id))

	w, err := inventory.WastePercentage(in.WastePercentage)
	if err != nil {
		return nil, err
	}
	o, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if err := o.CanTransitionTo(entity.OrderCompleted); err != nil {
		return nil, err
	}

	lines := make([]inventory.LineRequest, 0, len(o.Items))
	for _, it := range o.Items {
		lines = append(lines, inventory.LineRequest{
			ProductID:   it.ProductID,
			Quantity:    decimal.NewFromInt(int64(it.Quantity)),
			Additionals: it.Additionals,
		})
	}
	needs, _, err := uc.resolver.Resolve(ctx, o.RestaurantID, lines)
	if err != nil {
		return nil, err
	}

	src := inventory.Source{
		Kind:             inventory.SourceOrder,
		Observation:      fmt.Sprintf("Pedido #%s finalizado", o.ID),
		WasteObservation: fmt.Sprintf("Desperdicio (%s%%) - Pedido #%s", w.String(), o.ID),
	}
	res, err := uc.consumer.Commit(ctx, needs, w, src, userID, func(repos inventory.TxRepos) error {
		ok, err := repos.Orders.TransitionStatus(ctx, o.ID, active, entity.OrderCompleted, "")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: el pedido cambió de estado, reintente", domain.ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	done, err := uc.orders.GetByID(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Ctx(ctx).
		Str("order_id", o.ID).
		Str("waste_pct", w.String()).
		Int("ingredients", len(res.Items)).
		Int("warnings", len(res.Alerts)).
		Msg("pedido finalizado")

	items, warnings := inventory.ConsumptionReport(res)
	return &dto.OrderCompletionResponse{
		Order:           ToResponse(done),
		WastePercentage: w,
		Consumption:     items,
		Warnings:        warnings,
	}, nil
}

// Ticket comanda de cocina del pedido en PDF.
func (uc *UseCase) Ticket(ctx context.Context, restaurantID, id string) ([]byte, error) {
	if uc.tickets == nil {
		return nil, fmt.Errorf("%w: generador de comandas no configurado", domain.ErrNotFound)
	}
	o, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	r, err := uc.restaurants.GetByID(ctx, o.RestaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		r = &entity.Restaurant{ID: o.RestaurantID}
	}
	return uc.tickets.GenerateTicket(ctx, o, r)
}

func (uc *UseCase) load(ctx context.Context, restaurantID, id string) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	if restaurantID != "" && o.RestaurantID != restaurantID {
		return nil, domain.ErrForbidden
	}
	return o, nil
}

// ToResponse convierte la entidad al DTO.
func ToResponse(o *entity.Order) dto.OrderResponse {
	out := dto.OrderResponse{
		ID:           o.ID,
		RestaurantID: o.RestaurantID,
		UserID:       o.UserID,
		Status:       o.Status,
		TotalAmount:  o.TotalAmount,
		CancelReason: o.CancelReason,
		Items:        make([]dto.OrderItemResponse, 0, len(o.Items)),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
		CompletedAt:  o.CompletedAt,
		CancelledAt:  o.CancelledAt,
	}
	for _, it := range o.Items {
		item := dto.OrderItemResponse{
			ID:                    it.ID,
			ProductID:             it.ProductID,
			Product:               it.ProductName,
			Quantity:              it.Quantity,
			UnitPrice:             it.UnitPrice,
			Additional:            it.Additional,
			Observations:          it.Observations,
			AdditionalIngredients: make([]dto.AdditionalResponse, 0, len(it.Additionals)),
		}
		for _, a := range it.Additionals {
			item.AdditionalIngredients = append(item.AdditionalIngredients, dto.AdditionalResponse{
				IngredientID: a.IngredientID,
				Quantity:     a.Quantity,
				Unit:         a.Unit,
				Price:        a.Price,
			})
		}
		out.Items = append(out.Items, item)
	}
	return out
}
