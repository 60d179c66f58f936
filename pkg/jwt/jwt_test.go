package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/pkg/jwt"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	id := jwt.Identity{UserID: "u-1", RestaurantID: "r-1", Role: "KITCHEN"}
	token, err := jwt.Generate("secreto", id, "cafeterias-api", 5)
	require.NoError(t, err)

	got, err := jwt.Parse("secreto", token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", jwt.Identity{UserID: "u-1"}, "x", 5)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", jwt.Identity{UserID: "u-1"}, "x", -1)
	require.NoError(t, err)

	_, err = jwt.Parse("secreto", token)
	assert.Error(t, err, "un token expirado debe rechazarse")
}

func TestSecretVacio(t *testing.T) {
	_, err := jwt.Generate("", jwt.Identity{}, "x", 5)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)

	_, err = jwt.Parse("", "abc")
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}
