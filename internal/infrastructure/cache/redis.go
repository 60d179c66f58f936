// Package cache guarda en Redis el resumen de stock de cada restaurante.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/LuizZonetti1/cafeterias-api/internal/application/dto"
	"github.com/LuizZonetti1/cafeterias-api/internal/application/inventory"
	"github.com/LuizZonetti1/cafeterias-api/pkg/config"
)

var _ inventory.OverviewCache = (*OverviewCache)(nil)

const overviewKeyPrefix = "cafeterias:stock:overview:"

// NewRedisClient crea el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// OverviewCache implementación de inventory.OverviewCache sobre Redis (JSON + TTL).
type OverviewCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewOverviewCache construye la caché. ttl <= 0 usa un minuto.
func NewOverviewCache(rdb redis.Cmdable, ttl time.Duration) *OverviewCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &OverviewCache{rdb: rdb, ttl: ttl}
}

// OverviewKey clave Redis del resumen de un restaurante.
func OverviewKey(restaurantID string) string {
	return overviewKeyPrefix + restaurantID
}

// GetOverview devuelve (nil, nil) si no hay entrada.
func (c *OverviewCache) GetOverview(ctx context.Context, restaurantID string) (*dto.StockOverviewResponse, error) {
	raw, err := c.rdb.Get(ctx, OverviewKey(restaurantID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get overview: %w", err)
	}
	var v dto.StockOverviewResponse
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode overview: %w", err)
	}
	return &v, nil
}

// SetOverview guarda el resumen con el TTL configurado.
func (c *OverviewCache) SetOverview(ctx context.Context, restaurantID string, v *dto.StockOverviewResponse) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode overview: %w", err)
	}
	if err := c.rdb.Set(ctx, OverviewKey(restaurantID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set overview: %w", err)
	}
	return nil
}

// InvalidateOverview borra la entrada tras cualquier mutación de stock.
func (c *OverviewCache) InvalidateOverview(ctx context.Context, restaurantID string) error {
	if err := c.rdb.Del(ctx, OverviewKey(restaurantID)).Err(); err != nil {
		return fmt.Errorf("redis del overview: %w", err)
	}
	return nil
}
