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

// WarehouseUseCase casos de uso CRUD para almacenes.
type WarehouseUseCase struct {
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{repo: repo}
}

// Create crea un nuevo almacén.
func (uc *WarehouseUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateWarehouseRequest) (*dto.WarehouseResponse, error) {
	if err := requireRestaurant(restaurantID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	warehouse := &entity.Warehouse{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		Name:         name,
		Address:      in.Address,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene un almacén por ID.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// Update actualiza un almacén.
func (uc *WarehouseUseCase) Update(ctx context.Context, restaurantID, id string, in dto.UpdateWarehouseRequest) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
		}
		warehouse.Name = name
	}
	if in.Address != nil {
		warehouse.Address = *in.Address
	}
	warehouse.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, warehouse); err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// List lista almacenes del restaurante con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, restaurantID string, page dto.PageRequest) (*dto.WarehouseListResponse, error) {
	if err := requireRestaurant(restaurantID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByRestaurant(ctx, restaurantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return &dto.WarehouseListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un almacén. Falla con ErrConflict si aún tiene ingredientes activos.
func (uc *WarehouseUseCase) Delete(ctx context.Context, restaurantID, id string) error {
	if _, err := uc.load(ctx, restaurantID, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *WarehouseUseCase) load(ctx context.Context, restaurantID, id string) (*entity.Warehouse, error) {
	warehouse, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}
	if err := checkScope(restaurantID, warehouse.RestaurantID); err != nil {
		return nil, err
	}
	return warehouse, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		ID:           w.ID,
		RestaurantID: w.RestaurantID,
		Name:         w.Name,
		Address:      w.Address,
		CreatedAt:    w.CreatedAt,
		UpdatedAt:    w.UpdatedAt,
	}
}
