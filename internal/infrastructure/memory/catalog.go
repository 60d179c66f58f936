package memory

import (
	"context"
	"sort"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var (
	_ repository.RestaurantRepository = (*RestaurantRepo)(nil)
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.WarehouseRepository  = (*WarehouseRepo)(nil)
	_ repository.CategoryRepository   = (*CategoryRepo)(nil)
	_ repository.ProductRepository    = (*ProductRepo)(nil)
)

// ── Restaurant ───────────────────────────────────────────────────────────────

// RestaurantRepo restaurantes en memoria.
type RestaurantRepo struct{ s *Store }

func (r *RestaurantRepo) Create(_ context.Context, v *entity.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.restaurants[v.ID] = *v
	return nil
}

func (r *RestaurantRepo) GetByID(_ context.Context, id string) (*entity.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.restaurants[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *RestaurantRepo) List(_ context.Context, limit, offset int) ([]*entity.Restaurant, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Restaurant, 0, len(r.s.restaurants))
	for _, v := range r.s.restaurants {
		v := v
		out = append(out, &v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

// ── User ─────────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria; el email es único.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

// ── Warehouse ────────────────────────────────────────────────────────────────

// WarehouseRepo almacenes en memoria.
type WarehouseRepo struct{ s *Store }

func (r *WarehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WarehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.warehouses[w.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *WarehouseRepo) ListByRestaurant(_ context.Context, restaurantID string, limit, offset int) ([]*entity.Warehouse, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		if w.RestaurantID == restaurantID {
			w := w
			out = append(out, &w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *WarehouseRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ing := range r.s.ingredients {
		if ing.WarehouseID == id && ing.DeletedAt == nil {
			return domain.ErrConflict
		}
	}
	delete(r.s.warehouses, id)
	return nil
}

// ── Category ─────────────────────────────────────────────────────────────────

// CategoryRepo categorías en memoria; nombre único por restaurante.
type CategoryRepo struct{ s *Store }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.categories {
		if existing.RestaurantID == c.RestaurantID && entity.NormalizeName(existing.Name) == entity.NormalizeName(c.Name) {
			return domain.ErrDuplicate
		}
	}
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) ListByRestaurant(_ context.Context, restaurantID string) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Category
	for _, c := range r.s.categories {
		if c.RestaurantID == restaurantID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Product ──────────────────────────────────────────────────────────────────

// ProductRepo productos con receta en memoria.
type ProductRepo struct{ s *Store }

func cloneProduct(p entity.Product) *entity.Product {
	p.Recipe = append([]entity.RecipeItem(nil), p.Recipe...)
	return &p
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.products[p.ID] = *cloneProduct(*p)
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return cloneProduct(p), nil
}

func (r *ProductRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out[id] = cloneProduct(p)
		}
	}
	return out, nil
}

func (r *ProductRepo) ListByRestaurant(_ context.Context, restaurantID string, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.RestaurantID == restaurantID {
			out = append(out, cloneProduct(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cp := *cloneProduct(*p)
	cp.Recipe = existing.Recipe
	r.s.products[p.ID] = cp
	return nil
}

func (r *ProductRepo) ReplaceRecipe(_ context.Context, productID string, items []entity.RecipeItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.Recipe = append([]entity.RecipeItem(nil), items...)
	r.s.products[productID] = p
	return nil
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.products, id)
	return nil
}

func (r *ProductRepo) IsReferencedByOrders(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.orders {
		for _, it := range o.Items {
			if it.ProductID == id {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *ProductRepo) RecipeUsage(_ context.Context, restaurantID string) (map[string][]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string][]string{}
	for _, p := range r.s.products {
		if p.RestaurantID != restaurantID {
			continue
		}
		for _, item := range p.Recipe {
			out[item.IngredientID] = append(out[item.IngredientID], p.Name)
		}
	}
	for k := range out {
		sort.Strings(out[k])
	}
	return out, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
