package memory

import (
	"context"
	"sort"
	"time"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria.
type OrderRepo struct {
	s  *Store
	tx bool // creado por Run: ya tiene txMu
}

func cloneOrder(o entity.Order) *entity.Order {
	items := make([]entity.OrderItem, len(o.Items))
	for i, it := range o.Items {
		it.Additionals = append([]entity.OrderItemAdditional(nil), it.Additionals...)
		items[i] = it
	}
	o.Items = items
	return &o
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	defer r.s.lockWrite(r.tx)()
	r.s.orders[o.ID] = *cloneOrder(*o)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	return cloneOrder(o), nil
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.s.orders {
		if o.RestaurantID != f.RestaurantID || (f.Status != "" && o.Status != f.Status) {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, f.Limit, f.Offset), nil
}

func (r *OrderRepo) CountByStatus(_ context.Context, restaurantID string) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[string]int{}
	for _, o := range r.s.orders {
		if o.RestaurantID == restaurantID {
			out[o.Status]++
		}
	}
	return out, nil
}

func (r *OrderRepo) TransitionStatus(_ context.Context, id string, from []string, to, reason string) (bool, error) {
	defer r.s.lockWrite(r.tx)()
	o, ok := r.s.orders[id]
	if !ok || !contains(from, o.Status) {
		return false, nil
	}
	now := time.Now()
	o.Status = to
	o.UpdatedAt = now
	switch to {
	case entity.OrderCompleted:
		o.CompletedAt = &now
	case entity.OrderCancelled:
		o.CancelledAt = &now
		o.CancelReason = reason
	}
	r.s.orders[id] = o
	return true, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
