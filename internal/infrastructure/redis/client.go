// Package redis implementa sobre Redis los adaptadores efímeros del sistema:
// borradores del wizard de visitas, candado de envío único, throttle de
// ubicación y caché de posiciones para el mapa en vivo.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sawaid25/aixosfire-api/pkg/config"
)

// NewClient construye y verifica el cliente de Redis.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("error conectando a Redis: %w", err)
	}
	return client, nil
}
