package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LuizZonetti1/cafeterias-api/pkg/config"
)

func TestLoad_RequiereDatabaseURLYSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secreto")
	_, err := config.Load()
	require.Error(t, err, "sin DATABASE_URL debe fallar")

	t.Setenv("DATABASE_URL", "postgres://localhost/cafe")
	t.Setenv("JWT_SECRET", "")
	_, err = config.Load()
	require.Error(t, err, "sin JWT_SECRET debe fallar")
}

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cafe")
	t.Setenv("JWT_SECRET", "secreto")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3333, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:3333", cfg.HTTP.Addr())
	assert.Equal(t, "100-M", cfg.HTTP.RateLimit)
	assert.False(t, cfg.Redis.Enabled(), "sin REDIS_ADDR la caché queda desactivada")
	assert.False(t, cfg.Kafka.Enabled(), "sin KAFKA_BROKERS no se publica")
	assert.Equal(t, 60*time.Second, cfg.Redis.OverviewTTL)
}

func TestLoad_ListasYDuraciones(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/cafe")
	t.Setenv("JWT_SECRET", "secreto")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("REDIS_OVERVIEW_TTL", "2m")
	t.Setenv("HTTP_READ_TIMEOUT", "30")
	t.Setenv("PORT", "8080")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, 2*time.Minute, cfg.Redis.OverviewTTL)
	assert.Equal(t, 30*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 8080, cfg.HTTP.Port)
}
