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

// CategoryUseCase categorías del menú; el nombre es único por restaurante.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría. Devuelve domain.ErrDuplicate si el nombre ya existe.
func (uc *CategoryUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if err := requireRestaurant(restaurantID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	c := &entity.Category{ID: uuid.New().String(), RestaurantID: restaurantID, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List categorías del restaurante.
func (uc *CategoryUseCase) List(ctx context.Context, restaurantID string) ([]dto.CategoryResponse, error) {
	if err := requireRestaurant(restaurantID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, RestaurantID: c.RestaurantID, Name: c.Name, CreatedAt: c.CreatedAt}
}
