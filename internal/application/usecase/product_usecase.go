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

// ProductUseCase casos de uso CRUD para productos del menú y su receta.
// El stock no se toca aquí: se consume al producir o al finalizar pedidos.
type ProductUseCase struct {
	repo        repository.ProductRepository
	ingredients repository.IngredientRepository
	categories  repository.CategoryRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, ingredients repository.IngredientRepository, categories repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, ingredients: ingredients, categories: categories}
}

// Create crea un producto con su receta. La receta puede quedar vacía, pero entonces el
// producto no se puede producir ni finalizar en pedidos.
func (uc *ProductUseCase) Create(ctx context.Context, restaurantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := requireRestaurant(restaurantID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: el nombre es requerido", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if err := uc.checkCategory(ctx, restaurantID, in.CategoryID); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		RestaurantID: restaurantID,
		CategoryID:   in.CategoryID,
		Name:         name,
		Description:  in.Description,
		Price:        in.Price,
		ImageURL:     in.ImageURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	recipe, err := uc.buildRecipe(ctx, restaurantID, product.ID, in.Recipe)
	if err != nil {
		return nil, err
	}
	product.Recipe = recipe
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto con su receta.
func (uc *ProductUseCase) GetByID(ctx context.Context, restaurantID, id string) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza los datos del producto. La receta se cambia con UpdateRecipe.
func (uc *ProductUseCase) Update(ctx context.Context, restaurantID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: el nombre no puede estar vacío", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
		}
		product.Price = *in.Price
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, product.RestaurantID, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateRecipe reemplaza todas las líneas de la receta.
func (uc *ProductUseCase) UpdateRecipe(ctx context.Context, restaurantID, id string, in dto.UpdateRecipeRequest) (*dto.ProductResponse, error) {
	product, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return nil, err
	}
	recipe, err := uc.buildRecipe(ctx, product.RestaurantID, product.ID, in.Recipe)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.ReplaceRecipe(ctx, product.ID, recipe); err != nil {
		return nil, err
	}
	product.Recipe = recipe
	return toProductResponse(product), nil
}

// List lista productos del restaurante con paginación.
func (uc *ProductUseCase) List(ctx context.Context, restaurantID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	if err := requireRestaurant(restaurantID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByRestaurant(ctx, restaurantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto. Falla con ErrConflict si algún pedido lo referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, restaurantID, id string) error {
	product, err := uc.load(ctx, restaurantID, id)
	if err != nil {
		return err
	}
	used, err := uc.repo.IsReferencedByOrders(ctx, product.ID)
	if err != nil {
		return err
	}
	if used {
		return fmt.Errorf("%w: el producto tiene pedidos asociados", domain.ErrConflict)
	}
	return uc.repo.Delete(ctx, product.ID)
}

// buildRecipe valida las líneas: ingrediente del mismo restaurante, cantidad > 0, sin repetidos.
// La unidad por defecto es la del ingrediente.
func (uc *ProductUseCase) buildRecipe(ctx context.Context, restaurantID, productID string, in []dto.RecipeItemRequest) ([]entity.RecipeItem, error) {
	ids := make([]string, 0, len(in))
	seen := map[string]bool{}
	for i, it := range in {
		if it.IngredientID == "" || !it.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: recipe[%d] requiere ingredientId y cantidad > 0", domain.ErrInvalidInput, i)
		}
		if seen[it.IngredientID] {
			return nil, fmt.Errorf("%w: ingrediente repetido en la receta", domain.ErrInvalidInput)
		}
		seen[it.IngredientID] = true
		ids = append(ids, it.IngredientID)
	}
	ingredients, err := uc.ingredients.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]entity.RecipeItem, 0, len(in))
	for _, it := range in {
		ing, ok := ingredients[it.IngredientID]
		if !ok {
			return nil, fmt.Errorf("%w: ingrediente %s", domain.ErrNotFound, it.IngredientID)
		}
		if ing.RestaurantID != restaurantID {
			return nil, fmt.Errorf("%w: el ingrediente %s no pertenece al restaurante", domain.ErrForbidden, ing.Name)
		}
		unit := it.Unit
		if unit == "" {
			unit = ing.Unit
		}
		if !entity.IsValidUnit(unit) {
			return nil, fmt.Errorf("%w: unidad %q inválida", domain.ErrInvalidInput, unit)
		}
		out = append(out, entity.RecipeItem{
			ID:           uuid.New().String(),
			ProductID:    productID,
			IngredientID: ing.ID,
			Quantity:     it.Quantity,
			Unit:         unit,
		})
	}
	return out, nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, restaurantID, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: categoría %s", domain.ErrNotFound, categoryID)
	}
	return checkScope(restaurantID, c.RestaurantID)
}

func (uc *ProductUseCase) load(ctx context.Context, restaurantID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := checkScope(restaurantID, product.RestaurantID); err != nil {
		return nil, err
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	recipe := make([]dto.RecipeItemResponse, 0, len(p.Recipe))
	for _, it := range p.Recipe {
		recipe = append(recipe, dto.RecipeItemResponse{IngredientID: it.IngredientID, Quantity: it.Quantity, Unit: it.Unit})
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		RestaurantID: p.RestaurantID,
		CategoryID:   p.CategoryID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		ImageURL:     p.ImageURL,
		Recipe:       recipe,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
