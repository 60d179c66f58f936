// Package notification administra las alertas de stock bajo: las crea sin duplicar
// no leídas, las publica a los consumidores externos y expone el buzón del restaurante.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	domaininv "github.com/LuizZonetti1/cafeterias-api/internal/domain/inventory"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

var _ inventory.LowStockNotifier = (*Service)(nil)

// LowStockEvent evento publicado cuando se crea una notificación nueva.
type LowStockEvent struct {
	NotificationID string    `json:"notificationId"`
	RestaurantID   string    `json:"restaurantId"`
	IngredientID   string    `json:"ingredientId"`
	Ingredient     string    `json:"ingredient"`
	Level          string    `json:"level"`
	Current        string    `json:"current"`
	Minimum        string    `json:"minimum"`
	Unit           string    `json:"unit"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Publisher entrega eventos a un bus externo (Kafka). Opcional.
type Publisher interface {
	PublishLowStock(ctx context.Context, ev LowStockEvent) error
}

// CreateInput datos de una notificación a crear.
type CreateInput struct {
	RestaurantID string
	IngredientID string
	Type         string // LOW_STOCK por defecto
	Message      string
}

// Service sumidero de notificaciones del inventario.
type Service struct {
	repo      repository.NotificationRepository
	publisher Publisher
	log       zerolog.Logger
	now       func() time.Time
}

// NewService construye el servicio. publisher puede ser nil.
func NewService(repo repository.NotificationRepository, publisher Publisher, log zerolog.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, log: log, now: time.Now}
}

// Create crea la notificación salvo que ya exista una no leída del mismo
// (ingrediente, tipo, restaurante), en cuyo caso devuelve la existente.
// Ante un error lo registra y devuelve nil.
func (s *Service) Create(ctx context.Context, in CreateInput) *entity.Notification {
	n, _ := s.create(ctx, in)
	return n
}

func (s *Service) create(ctx context.Context, in CreateInput) (*entity.Notification, bool) {
	if in.Type == "" {
		in.Type = entity.NotificationLowStock
	}
	n := &entity.Notification{
		ID:           uuid.New().String(),
		RestaurantID: in.RestaurantID,
		IngredientID: in.IngredientID,
		Type:         in.Type,
		Message:      in.Message,
		CreatedAt:    s.now(),
	}
	got, created, err := s.repo.CreateIfNoUnread(ctx, n)
	if err != nil {
		s.log.Error().Ctx(ctx).Err(err).
			Str("restaurant_id", in.RestaurantID).
			Str("ingredient_id", in.IngredientID).
			Msg("no se pudo crear la notificación")
		return nil, false
	}
	return got, created
}

// NotifyLowStock crea la notificación de stock bajo y, si es nueva, la publica.
func (s *Service) NotifyLowStock(ctx context.Context, a inventory.LowStockAlert) {
	msg := LowStockMessage(a)
	n, created := s.create(ctx, CreateInput{
		RestaurantID: a.RestaurantID,
		IngredientID: a.IngredientID,
		Type:         entity.NotificationLowStock,
		Message:      msg,
	})
	if n == nil || !created {
		return
	}
	s.log.Info().Ctx(ctx).
		Str("restaurant_id", a.RestaurantID).
		Str("ingredient", a.IngredientName).
		Str("level", a.Level).
		Msg("notificación de stock bajo creada")

	if s.publisher == nil {
		return
	}
	ev := LowStockEvent{
		NotificationID: n.ID,
		RestaurantID:   a.RestaurantID,
		IngredientID:   a.IngredientID,
		Ingredient:     a.IngredientName,
		Level:          a.Level,
		Current:        a.Current.String(),
		Minimum:        a.Minimum.String(),
		Unit:           a.Unit,
		Message:        msg,
		CreatedAt:      n.CreatedAt,
	}
	if err := s.publisher.PublishLowStock(ctx, ev); err != nil {
		s.log.Warn().Ctx(ctx).Err(err).Str("notification_id", n.ID).Msg("no se pudo publicar el evento de stock bajo")
	}
}

// LowStockMessage texto de la alerta.
func LowStockMessage(a inventory.LowStockAlert) string {
	prefix := "Stock bajo"
	if a.Level == domaininv.RestockExhausted {
		prefix = "Stock agotado"
	}
	return fmt.Sprintf("%s: %s (%s %s - Mínimo: %s %s)",
		prefix, a.IngredientName, a.Current.String(), a.Unit, a.Minimum.String(), a.Unit)
}

// ── Buzón ────────────────────────────────────────────────────────────────────

// List notificaciones del restaurante con totales.
func (s *Service) List(ctx context.Context, restaurantID string, unreadOnly bool) (*dto.NotificationListResponse, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("%w: restaurantId es requerido", domain.ErrInvalidInput)
	}
	list, err := s.repo.ListByRestaurant(ctx, restaurantID, unreadOnly)
	if err != nil {
		return nil, err
	}
	total, unread, err := s.repo.Counts(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.NotificationResponse, 0, len(list))
	for _, n := range list {
		items = append(items, toResponse(n))
	}
	return &dto.NotificationListResponse{
		Items:   items,
		Summary: dto.NotificationSummary{Total: total, Unread: unread, Read: total - unread},
	}, nil
}

// MarkRead marca una notificación como leída.
func (s *Service) MarkRead(ctx context.Context, restaurantID, id string) (*dto.NotificationResponse, error) {
	if _, err := s.owned(ctx, restaurantID, id); err != nil {
		return nil, err
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, err
	}
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toResponse(n)
	return &out, nil
}

// MarkAllRead marca todas las no leídas del restaurante.
func (s *Service) MarkAllRead(ctx context.Context, restaurantID string) (*dto.CountResponse, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("%w: restaurantId es requerido", domain.ErrInvalidInput)
	}
	n, err := s.repo.MarkAllRead(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return &dto.CountResponse{Count: n}, nil
}

// Delete elimina una notificación.
func (s *Service) Delete(ctx context.Context, restaurantID, id string) error {
	if _, err := s.owned(ctx, restaurantID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// DeleteAllRead elimina las notificaciones ya leídas del restaurante.
func (s *Service) DeleteAllRead(ctx context.Context, restaurantID string) (*dto.CountResponse, error) {
	if restaurantID == "" {
		return nil, fmt.Errorf("%w: restaurantId es requerido", domain.ErrInvalidInput)
	}
	n, err := s.repo.DeleteRead(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	return &dto.CountResponse{Count: n}, nil
}

// owned carga la notificación y verifica el restaurante (vacío no restringe).
func (s *Service) owned(ctx context.Context, restaurantID, id string) (*entity.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	if restaurantID != "" && n.RestaurantID != restaurantID {
		return nil, domain.ErrForbidden
	}
	return n, nil
}

func toResponse(n *entity.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:           n.ID,
		RestaurantID: n.RestaurantID,
		IngredientID: n.IngredientID,
		Type:         n.Type,
		Message:      n.Message,
		IsRead:       n.IsRead,
		CreatedAt:    n.CreatedAt,
		ReadAt:       n.ReadAt,
	}
}
