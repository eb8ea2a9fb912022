package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sawaid25/aixosfire-api/internal/application/tracking"
)

var _ tracking.PositionCache = (*PositionCache)(nil)

// positionTTL vida de una posición en caché. Una entrada sin refresco
// desaparece del mapa en vivo y queda solo la posición persistida en BD.
const positionTTL = 10 * time.Minute

// PositionCache últimas posiciones por rol, una clave por emisor con TTL.
type PositionCache struct {
	client *redis.Client
}

// NewPositionCache construye la caché de posiciones.
func NewPositionCache(client *redis.Client) *PositionCache {
	return &PositionCache{client: client}
}

// Set guarda la posición del emisor renovando su TTL.
func (c *PositionCache) Set(ctx context.Context, role string, p tracking.Position) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("error serializando posición: %w", err)
	}
	key := fmt.Sprintf("position:%s:%s", role, p.ID)
	if err := c.client.Set(ctx, key, data, positionTTL).Err(); err != nil {
		return fmt.Errorf("error guardando posición: %w", err)
	}
	return nil
}

// List devuelve las posiciones vigentes de un rol. Usa SCAN para no bloquear
// al servidor con KEYS.
func (c *PositionCache) List(ctx context.Context, role string) ([]tracking.Position, error) {
	pattern := fmt.Sprintf("position:%s:*", role)

	var positions []tracking.Position
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		data, err := c.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			// La clave pudo expirar entre SCAN y GET.
			continue
		}
		var p tracking.Position
		if err := json.Unmarshal(data, &p); err != nil {
			continue
		}
		positions = append(positions, p)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error listando posiciones: %w", err)
	}
	return positions, nil
}
