package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var (
	_ repository.IngredientRepository    = (*IngredientRepo)(nil)
	_ repository.StockRepository         = (*StockRepo)(nil)
	_ repository.StockMovementRepository = (*MovementRepo)(nil)
)

// ── Ingredient ───────────────────────────────────────────────────────────────

// IngredientRepo ingredientes en memoria; el nombre normalizado es único por almacén.
type IngredientRepo struct {
	s  *Store
	tx bool // creado por Run: ya tiene txMu
}

func (r *IngredientRepo) Create(_ context.Context, ing *entity.Ingredient) error {
	defer r.s.lockWrite(r.tx)()
	key := entity.NormalizeName(ing.Name)
	for _, existing := range r.s.ingredients {
		if existing.DeletedAt == nil && existing.WarehouseID == ing.WarehouseID && entity.NormalizeName(existing.Name) == key {
			return domain.ErrDuplicate
		}
	}
	cp := *ing
	cp.Stock = nil
	r.s.ingredients[ing.ID] = cp
	return nil
}

func (r *IngredientRepo) GetByID(_ context.Context, id string) (*entity.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.ingredientLocked(id), nil
}

func (r *IngredientRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*entity.Ingredient, len(ids))
	for _, id := range ids {
		if ing := r.s.ingredientLocked(id); ing != nil {
			out[id] = ing
		}
	}
	return out, nil
}

func (r *IngredientRepo) FindByName(_ context.Context, warehouseID, name string) (*entity.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := entity.NormalizeName(name)
	for id, ing := range r.s.ingredients {
		if ing.DeletedAt == nil && ing.WarehouseID == warehouseID && entity.NormalizeName(ing.Name) == key {
			return r.s.ingredientLocked(id), nil
		}
	}
	return nil, nil
}

func (r *IngredientRepo) ListByRestaurant(_ context.Context, restaurantID, warehouseID string) ([]*entity.Ingredient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Ingredient
	for id, ing := range r.s.ingredients {
		if ing.RestaurantID != restaurantID || (warehouseID != "" && ing.WarehouseID != warehouseID) {
			continue
		}
		if v := r.s.ingredientLocked(id); v != nil {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *IngredientRepo) Update(_ context.Context, ing *entity.Ingredient) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.ingredients[ing.ID]; !ok {
		return domain.ErrNotFound
	}
	key := entity.NormalizeName(ing.Name)
	for id, existing := range r.s.ingredients {
		if id != ing.ID && existing.DeletedAt == nil && existing.WarehouseID == ing.WarehouseID && entity.NormalizeName(existing.Name) == key {
			return domain.ErrDuplicate
		}
	}
	cp := *ing
	cp.Stock = nil
	r.s.ingredients[ing.ID] = cp
	return nil
}

func (r *IngredientRepo) SoftDelete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	ing, ok := r.s.ingredients[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	ing.DeletedAt = &now
	r.s.ingredients[id] = ing
	return nil
}

func (r *IngredientRepo) HasMovements(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st := r.s.stockByIngredientLocked(id)
	if st == nil {
		return false, nil
	}
	for _, m := range r.s.movements {
		if m.StockID == st.ID {
			return true, nil
		}
	}
	return false, nil
}

// ── Stock ────────────────────────────────────────────────────────────────────

// StockRepo stock en memoria. Cada mutación es atómica bajo el mutex del almacén.
type StockRepo struct {
	s  *Store
	tx bool // creado por Run: ya tiene txMu
}

func (r *StockRepo) Create(_ context.Context, st *entity.Stock) error {
	defer r.s.lockWrite(r.tx)()
	if r.s.stockByIngredientLocked(st.IngredientID) != nil {
		return domain.ErrDuplicate
	}
	r.s.stocks[st.ID] = *st
	return nil
}

func (r *StockRepo) GetByIngredient(_ context.Context, ingredientID string) (*entity.Stock, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.stockByIngredientLocked(ingredientID), nil
}

// GetForUpdate en memoria equivale a GetByIngredient: las transacciones ya están serializadas.
func (r *StockRepo) GetForUpdate(ctx context.Context, ingredientID string) (*entity.Stock, error) {
	return r.GetByIngredient(ctx, ingredientID)
}

func (r *StockRepo) Decrement(_ context.Context, stockID string, amount decimal.Decimal, userID string) (*entity.Stock, error) {
	defer r.s.lockWrite(r.tx)()
	st, ok := r.s.stocks[stockID]
	if !ok || st.QuantityCurrent.LessThan(amount) {
		return nil, nil
	}
	st.QuantityCurrent = st.QuantityCurrent.Sub(amount)
	st.LastUpdatedBy = userID
	st.UpdatedAt = time.Now()
	r.s.stocks[stockID] = st
	return &st, nil
}

func (r *StockRepo) Increment(_ context.Context, stockID string, amount, averageCost decimal.Decimal, userID string) (*entity.Stock, error) {
	defer r.s.lockWrite(r.tx)()
	st, ok := r.s.stocks[stockID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	st.QuantityCurrent = st.QuantityCurrent.Add(amount)
	st.AverageCost = averageCost
	st.LastUpdatedBy = userID
	st.UpdatedAt = time.Now()
	r.s.stocks[stockID] = st
	return &st, nil
}

func (r *StockRepo) SetMinimum(_ context.Context, stockID string, minimum decimal.Decimal, userID string) (*entity.Stock, error) {
	defer r.s.lockWrite(r.tx)()
	st, ok := r.s.stocks[stockID]
	if !ok {
		return nil, nil
	}
	st.QuantityMinimum = minimum
	st.LastUpdatedBy = userID
	st.UpdatedAt = time.Now()
	r.s.stocks[stockID] = st
	return &st, nil
}

// ── Movements ────────────────────────────────────────────────────────────────

// MovementRepo libro de movimientos en memoria (solo inserción).
type MovementRepo struct {
	s  *Store
	tx bool // creado por Run: ya tiene txMu
}

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	if !m.Quantity.IsPositive() {
		return domain.ErrInvalidInput
	}
	defer r.s.lockWrite(r.tx)()
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *MovementRepo) ListByStock(_ context.Context, stockID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if m := r.s.movements[i]; m.StockID == stockID {
			out = append(out, &m)
		}
	}
	return paginate(out, limit, offset), nil
}
