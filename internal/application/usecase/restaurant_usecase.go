package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/repository"
)

// RestaurantUseCase aplica reglas de negocio para restaurantes (tenants).
type RestaurantUseCase struct {
	repo repository.RestaurantRepository
}

// NewRestaurantUseCase construye el caso de uso con el puerto de persistencia.
func NewRestaurantUseCase(repo repository.RestaurantRepository) *RestaurantUseCase {
	return &RestaurantUseCase{repo: repo}
}

// Create crea un restaurante.
func (uc *RestaurantUseCase) Create(ctx context.Context, in dto.CreateRestaurantRequest) (*dto.RestaurantResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	r := &entity.Restaurant{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   in.Address,
		Phone:     in.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRestaurantResponse(r), nil
}

// GetByID obtiene un restaurante. restaurantID vacío no restringe.
func (uc *RestaurantUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.RestaurantResponse, error) {
	if err := checkScope(restaurantID, id); err != nil {
		return nil, err
	}
	r, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrNotFound
	}
	return toRestaurantResponse(r), nil
}

// List lista restaurantes con paginación.
func (uc *RestaurantUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.RestaurantResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RestaurantResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRestaurantResponse(r))
	}
	return out, nil
}

func toRestaurantResponse(r *entity.Restaurant) *dto.RestaurantResponse {
	return &dto.RestaurantResponse{
		ID:        r.ID,
		Name:      r.Name,
		Address:   r.Address,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
	}
}

// checkScope devuelve ErrForbidden si el recurso pertenece a otro restaurante.
// restaurantID vacío (DEVELOPER) no restringe.
func checkScope(restaurantID, owner string) error {
	if restaurantID != "" && restaurantID != owner {
		return domain.ErrForbidden
	}
	return nil
}

// requireRestaurant exige un restaurante para operaciones de alta.
func requireRestaurant(restaurantID string) error {
	if restaurantID == "" {
		return fmt.Errorf("%w: restaurantId es requerido", domain.ErrInvalidInput)
	}
	return nil
}
