package memory

import (
	"context"
	"sort"
	"time"

	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones en memoria.
type NotificationRepo struct {
	s  *Store
	tx bool // creado por Run: ya tiene txMu
}

func (r *NotificationRepo) CreateIfNoUnread(_ context.Context, n *entity.Notification) (*entity.Notification, bool, error) {
	defer r.s.lockWrite(r.tx)()
	for _, existing := range r.s.notifications {
		if !existing.IsRead && existing.IngredientID == n.IngredientID &&
			existing.Type == n.Type && existing.RestaurantID == n.RestaurantID {
			return &existing, false, nil
		}
	}
	r.s.notifications[n.ID] = *n
	cp := *n
	return &cp, true, nil
}

func (r *NotificationRepo) GetByID(_ context.Context, id string) (*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notifications[id]
	if !ok {
		return nil, nil
	}
	return &n, nil
}

func (r *NotificationRepo) ListByRestaurant(_ context.Context, restaurantID string, unreadOnly bool) ([]*entity.Notification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.s.notifications {
		if n.RestaurantID != restaurantID || (unreadOnly && n.IsRead) {
			continue
		}
		n := n
		out = append(out, &n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *NotificationRepo) Counts(_ context.Context, restaurantID string) (int, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var total, unread int
	for _, n := range r.s.notifications {
		if n.RestaurantID != restaurantID {
			continue
		}
		total++
		if !n.IsRead {
			unread++
		}
	}
	return total, unread, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	n, ok := r.s.notifications[id]
	if !ok {
		return domain.ErrNotFound
	}
	if !n.IsRead {
		now := time.Now()
		n.IsRead, n.ReadAt = true, &now
		r.s.notifications[id] = n
	}
	return nil
}

func (r *NotificationRepo) MarkAllRead(_ context.Context, restaurantID string) (int64, error) {
	defer r.s.lockWrite(r.tx)()
	var count int64
	now := time.Now()
	for id, n := range r.s.notifications {
		if n.RestaurantID == restaurantID && !n.IsRead {
			n.IsRead, n.ReadAt = true, &now
			r.s.notifications[id] = n
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepo) Delete(_ context.Context, id string) error {
	defer r.s.lockWrite(r.tx)()
	if _, ok := r.s.notifications[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.notifications, id)
	return nil
}

func (r *NotificationRepo) DeleteRead(_ context.Context, restaurantID string) (int64, error) {
	defer r.s.lockWrite(r.tx)()
	var count int64
	for id, n := range r.s.notifications {
		if n.RestaurantID == restaurantID && n.IsRead {
			delete(r.s.notifications, id)
			count++
		}
	}
	return count, nil
}
