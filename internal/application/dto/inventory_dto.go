package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProduceRequest body para POST /api/production.
type ProduceRequest struct {
	ProductID       string           `json:"productId"`
	Quantity        decimal.Decimal  `json:"quantity"`
	WastePercentage *decimal.Decimal `json:"wastePercentage,omitempty"`
}

// UsedIn aporte de una receta o adicional a la necesidad de un ingrediente.
type UsedIn struct {
	Product  string           `json:"product"`
	Quantity decimal.Decimal  `json:"quantity"`
	Needed   decimal.Decimal  `json:"needed"`
	Source   string           `json:"source"` // recipe | additional
	Price    *decimal.Decimal `json:"price,omitempty"`
}

// MissingIngredient faltante de un ingrediente (needed incluye desperdicio).
type MissingIngredient struct {
	IngredientID string          `json:"ingredientId"`
	Ingredient   string          `json:"ingredient"`
	Needed       decimal.Decimal `json:"needed"`
	Available    decimal.Decimal `json:"available"`
	Missing      decimal.Decimal `json:"missing"`
	Unit         string          `json:"unit"`
	UsedIn       []UsedIn        `json:"usedIn"`
}

// ConsumptionItem reporte de consumo de un ingrediente.
type ConsumptionItem struct {
	IngredientID  string          `json:"ingredientId"`
	Ingredient    string          `json:"ingredient"`
	PreviousStock decimal.Decimal `json:"previousStock"`
	RecipeUsed    decimal.Decimal `json:"recipeUsed"`
	WasteUsed     decimal.Decimal `json:"wasteUsed"`
	TotalConsumed decimal.Decimal `json:"totalConsumed"`
	NewStock      decimal.Decimal `json:"newStock"`
	Unit          string          `json:"unit"`
	NeedsRestock  bool            `json:"needsRestock"`
	MovementIDs   []string        `json:"movementIds"`
}

// StockWarning alerta de reposición tras un consumo o pérdida.
type StockWarning struct {
	IngredientID string          `json:"ingredientId"`
	Ingredient   string          `json:"ingredient"`
	Level        string          `json:"level"` // exhausted | low
	Current      decimal.Decimal `json:"current"`
	Minimum      decimal.Decimal `json:"minimum"`
	Unit         string          `json:"unit"`
}

// ProductionResponse salida de POST /api/production.
type ProductionResponse struct {
	ProductID        string            `json:"productId"`
	Product          string            `json:"product"`
	QuantityProduced decimal.Decimal   `json:"quantityProduced"`
	WastePercentage  decimal.Decimal   `json:"wastePercentage"`
	Consumption      []ConsumptionItem `json:"consumption"`
	Warnings         []StockWarning    `json:"warnings"`
}

// AddStockRequest body para registrar una entrada de mercancía.
type AddStockRequest struct {
	Quantity       decimal.Decimal  `json:"quantity"`
	CostPerUnit    *decimal.Decimal `json:"costPerUnit,omitempty"`
	Supplier       string           `json:"supplier,omitempty"`
	ExpirationDate *time.Time       `json:"expirationDate,omitempty"`
	Observation    string           `json:"observation,omitempty"`
}

// RegisterLossRequest body para registrar una pérdida.
type RegisterLossRequest struct {
	Quantity    decimal.Decimal `json:"quantity"`
	Reason      string          `json:"reason,omitempty"` // default OTHER
	Observation string          `json:"observation,omitempty"`
}

// SetMinimumRequest body para fijar el stock mínimo.
type SetMinimumRequest struct {
	Minimum decimal.Decimal `json:"minimum"`
}

// StockChangeResponse salida de entrada / pérdida manual.
type StockChangeResponse struct {
	IngredientID  string          `json:"ingredientId"`
	Ingredient    string          `json:"ingredient"`
	PreviousStock decimal.Decimal `json:"previousStock"`
	Change        decimal.Decimal `json:"change"`
	NewStock      decimal.Decimal `json:"newStock"`
	Minimum       decimal.Decimal `json:"minimum"`
	Unit          string          `json:"unit"`
	NeedsRestock  bool            `json:"needsRestock"`
	MovementID    string          `json:"movementId"`
}

// StockResponse estado del stock de un ingrediente.
type StockResponse struct {
	ID            string          `json:"id"`
	IngredientID  string          `json:"ingredientId"`
	Current       decimal.Decimal `json:"currentStock"`
	Minimum       decimal.Decimal `json:"minimumStock"`
	AverageCost   decimal.Decimal `json:"averageCost"`
	LastUpdatedBy string          `json:"lastUpdatedBy,omitempty"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// MovementResponse fila del libro de movimientos.
type MovementResponse struct {
	ID             string           `json:"id"`
	Type           string           `json:"type"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Reason         string           `json:"reason,omitempty"`
	CostPerUnit    *decimal.Decimal `json:"costPerUnit,omitempty"`
	Supplier       string           `json:"supplier,omitempty"`
	ExpirationDate *time.Time       `json:"expirationDate,omitempty"`
	Observation    string           `json:"observation,omitempty"`
	UserID         string           `json:"userId"`
	CreatedAt      time.Time        `json:"createdAt"`
}

// MovementListResponse movimientos paginados.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// OverviewItem estado de un ingrediente en el resumen del restaurante.
type OverviewItem struct {
	IngredientID  string           `json:"ingredientId"`
	Ingredient    string           `json:"ingredient"`
	Unit          string           `json:"unit"`
	WarehouseID   string           `json:"warehouseId"`
	CurrentStock  *decimal.Decimal `json:"currentStock"`
	MinimumStock  *decimal.Decimal `json:"minimumStock"`
	Status        string           `json:"status"` // OK | LOW_STOCK | OUT_OF_STOCK | NO_STOCK
	UsedInRecipes []string         `json:"usedInRecipes"`
	LastUpdated   *time.Time       `json:"lastUpdated,omitempty"`
}

// OverviewStatistics totales del resumen.
type OverviewStatistics struct {
	Total        int `json:"total"`
	WithStock    int `json:"withStock"`
	WithoutStock int `json:"withoutStock"`
	LowStock     int `json:"lowStock"`
	OutOfStock   int `json:"outOfStock"`
}

// StockOverviewResponse salida de GET /api/stock/overview.
type StockOverviewResponse struct {
	RestaurantID string             `json:"restaurantId"`
	Ingredients  []OverviewItem     `json:"ingredients"`
	Statistics   OverviewStatistics `json:"statistics"`
}

// ReplenishmentSuggestion sugerencia de compra para un ingrediente en o bajo su mínimo.
type ReplenishmentSuggestion struct {
	IngredientID  string          `json:"ingredientId"`
	Ingredient    string          `json:"ingredient"`
	Unit          string          `json:"unit"`
	WarehouseID   string          `json:"warehouseId"`
	CurrentStock  decimal.Decimal `json:"currentStock"`
	MinimumStock  decimal.Decimal `json:"minimumStock"`
	IdealStock    decimal.Decimal `json:"idealStock"`    // mínimo * 1.5
	SuggestedQty  decimal.Decimal `json:"suggestedQty"`  // ideal - actual
	UnitCost      decimal.Decimal `json:"unitCost"`      // costo promedio ponderado
	EstimatedCost decimal.Decimal `json:"estimatedCost"` // sugerido * costo
	Priority      int             `json:"priority"`      // 1 = más urgente
}
