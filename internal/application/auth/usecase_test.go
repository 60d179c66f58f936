package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/auth"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain"
	"github.com/LuizZonetti1/cafeterias-api/internal/domain/entity"
	"github.com/LuizZonetti1/cafeterias-api/internal/infrastructure/memory"
	"github.com/LuizZonetti1/cafeterias-api/pkg/jwt"
)

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	require.NoError(t, s.Restaurants().Create(context.Background(), &entity.Restaurant{ID: "rest-1", Name: "Café"}))
	uc := auth.NewAuthUseCase(s.Users(), s.Restaurants(), auth.JWTConfig{Secret: "secreto", ExpMinutes: 5, Issuer: "test"})
	return uc, s
}

func TestRegisterYLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: " Cocina@Cafe.com ", Password: "12345678", RestaurantID: "rest-1", Role: entity.RoleKitchen,
	})
	require.NoError(t, err)
	assert.Equal(t, "cocina@cafe.com", u.Email)
	assert.Equal(t, "cocina@cafe.com", u.Name, "sin nombre usa el email")

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "cocina@cafe.com", Password: "12345678"})
	require.NoError(t, err)
	id, err := jwt.Parse("secreto", res.Token)
	require.NoError(t, err)
	assert.Equal(t, jwt.Identity{UserID: u.ID, RestaurantID: "rest-1", Role: entity.RoleKitchen}, id)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "cocina@cafe.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@cafe.com", Password: "12345678"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	ok := dto.RegisterRequest{Email: "a@b.com", Password: "12345678", RestaurantID: "rest-1"}

	_, err := uc.RegisterUser(ctx, ok)
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, ok)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	cases := map[string]dto.RegisterRequest{
		"contraseña corta": {Email: "x@b.com", Password: "123", RestaurantID: "rest-1"},
		"email inválido":   {Email: "sin-arroba", Password: "12345678", RestaurantID: "rest-1"},
		"rol inválido":     {Email: "y@b.com", Password: "12345678", RestaurantID: "rest-1", Role: "CHEF"},
		"sin restaurante":  {Email: "z@b.com", Password: "12345678"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.RegisterUser(ctx, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "w@b.com", Password: "12345678", RestaurantID: "nope"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	dev, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "dev@b.com", Password: "12345678", Role: entity.RoleDeveloper})
	require.NoError(t, err)
	assert.Empty(t, dev.RestaurantID)
}
