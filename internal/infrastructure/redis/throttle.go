package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/sawaid25/aixosfire-api/internal/application/tracking"
)

var _ tracking.Throttle = (*Throttle)(nil)

// Throttle limita la frecuencia de escritura de posición por emisor. La
// ventana se implementa con SETNX: mientras la clave viva, el emisor espera.
type Throttle struct {
	client *redis.Client
}

// NewThrottle construye el limitador de posición.
func NewThrottle(client *redis.Client) *Throttle {
	return &Throttle{client: client}
}

// Allow devuelve true si el emisor puede escribir ahora; en ese caso abre
// una nueva ventana de tracking.ThrottleWindow.
func (t *Throttle) Allow(ctx context.Context, role, id string) (bool, error) {
	key := fmt.Sprintf("position:throttle:%s:%s", role, id)
	ok, err := t.client.SetNX(ctx, key, "1", tracking.ThrottleWindow).Result()
	if err != nil {
		return false, fmt.Errorf("error consultando throttle de posición: %w", err)
	}
	return ok, nil
}
