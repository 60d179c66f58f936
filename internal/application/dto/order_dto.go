package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdditionalRequest ingrediente extra de una línea de pedido.
type AdditionalRequest struct {
	IngredientID string          `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
}

// OrderItemRequest línea de pedido.
type OrderItemRequest struct {
	ProductID             string              `json:"productId"`
	Quantity              int                 `json:"quantity"`
	Additional            string              `json:"additional,omitempty"`
	Observations          string              `json:"observations,omitempty"`
	AdditionalIngredients []AdditionalRequest `json:"additionalIngredients,omitempty"`
}

// CreateOrderRequest body para POST /api/orders.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// CompleteOrderRequest body para POST /api/orders/:id/complete.
type CompleteOrderRequest struct {
	WastePercentage *decimal.Decimal `json:"wastePercentage,omitempty"`
}

// CancelOrderRequest body para POST /api/orders/:id/cancel.
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// AdditionalResponse adicional de una línea.
type AdditionalResponse struct {
	IngredientID string          `json:"ingredientId"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit"`
	Price        decimal.Decimal `json:"price"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ID                    string               `json:"id"`
	ProductID             string               `json:"productId"`
	Product               string               `json:"product"`
	Quantity              int                  `json:"quantity"`
	UnitPrice             decimal.Decimal      `json:"unitPrice"`
	Additional            string               `json:"additional,omitempty"`
	Observations          string               `json:"observations,omitempty"`
	AdditionalIngredients []AdditionalResponse `json:"additionalIngredients"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID           string              `json:"id"`
	RestaurantID string              `json:"restaurantId"`
	UserID       string              `json:"userId"`
	Status       string              `json:"status"`
	TotalAmount  decimal.Decimal     `json:"totalAmount"`
	CancelReason string              `json:"cancelReason,omitempty"`
	Items        []OrderItemResponse `json:"items"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
	CompletedAt  *time.Time          `json:"completedAt,omitempty"`
	CancelledAt  *time.Time          `json:"cancelledAt,omitempty"`
}

// OrderListResponse listado con conteo por estado.
type OrderListResponse struct {
	Items   []OrderResponse `json:"items"`
	Summary map[string]int  `json:"summary"`
	Page    PageResponse    `json:"page"`
}

// OrderCompletionResponse salida de finalizar un pedido.
type OrderCompletionResponse struct {
	Order           OrderResponse     `json:"order"`
	WastePercentage decimal.Decimal   `json:"wastePercentage"`
	Consumption     []ConsumptionItem `json:"consumption"`
	Warnings        []StockWarning    `json:"warnings"`
}
