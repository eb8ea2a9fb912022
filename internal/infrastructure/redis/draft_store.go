package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sawaid25/aixosfire-api/internal/application/visit"
	"github.com/sawaid25/aixosfire-api/internal/domain"
)

var _ visit.DraftStore = (*DraftStore)(nil)

// draftTTL vida de un borrador sin actividad. Cada Save renueva el plazo.
const draftTTL = 72 * time.Hour

// DraftStore borradores del wizard serializados como JSON con TTL.
type DraftStore struct {
	client *redis.Client
}

// NewDraftStore construye el almacén de borradores.
func NewDraftStore(client *redis.Client) *DraftStore {
	return &DraftStore{client: client}
}

// Save serializa y guarda el borrador renovando su TTL.
func (s *DraftStore) Save(ctx context.Context, d *visit.Draft) error {
	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("error serializando borrador: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(d.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("error guardando borrador: %w", err)
	}
	return nil
}

// Get recupera un borrador. Devuelve domain.ErrNotFound si expiró o no existe.
func (s *DraftStore) Get(ctx context.Context, id string) (*visit.Draft, error) {
	data, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("error leyendo borrador: %w", err)
	}

	var d visit.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("error deserializando borrador: %w", err)
	}
	return &d, nil
}

// Delete elimina un borrador. Borrar uno inexistente no es error.
func (s *DraftStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("error eliminando borrador: %w", err)
	}
	return nil
}

func draftKey(id string) string {
	return "visit:draft:" + id
}
