package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sawaid25/aixosfire-api/internal/application/visit"
)

var _ visit.SubmitLock = (*SubmitLock)(nil)

// lockTTL límite superior de un envío; evita candados huérfanos si el
// proceso muere antes de Release.
const lockTTL = 30 * time.Second

// SubmitLock candado de vuelo único por borrador vía SETNX.
type SubmitLock struct {
	client *redis.Client
}

// NewSubmitLock construye el candado de envío.
func NewSubmitLock(client *redis.Client) *SubmitLock {
	return &SubmitLock{client: client}
}

// Acquire intenta tomar el candado del borrador. Devuelve false si otro
// envío del mismo borrador sigue en curso.
func (l *SubmitLock) Acquire(ctx context.Context, draftID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKey(draftID), "1", lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("error adquiriendo candado de envío: %w", err)
	}
	return ok, nil
}

// Release libera el candado del borrador.
func (l *SubmitLock) Release(ctx context.Context, draftID string) error {
	if err := l.client.Del(ctx, lockKey(draftID)).Err(); err != nil {
		return fmt.Errorf("error liberando candado de envío: %w", err)
	}
	return nil
}

func lockKey(draftID string) string {
	return "visit:submit:" + draftID
}
