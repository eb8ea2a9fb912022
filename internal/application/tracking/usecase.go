// Package tracking implementa el reporte de posición de agentes y clientes
// con throttle server-side: como máximo una escritura por emisor cada 30s.
package tracking

import (
	"context"
	"fmt"
	"time"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
)

// Ventana mínima entre escrituras de posición por emisor.
const ThrottleWindow = 30 * time.Second

// Roles de emisor de posición.
const (
	RoleAgent    = "agent"
	RoleCustomer = "customer"
)

// Throttle decide si un emisor puede escribir su posición. Allow devuelve
// false mientras la ventana del emisor siga abierta.
type Throttle interface {
	Allow(ctx context.Context, role, id string) (bool, error)
}

// Position una posición en caché para el mapa en vivo.
type Position struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Detail    string    `json:"detail,omitempty"`
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PositionCache caché de últimas posiciones, más fresco que la BD para el
// mapa del admin. Las entradas expiran solas.
type PositionCache interface {
	Set(ctx context.Context, role string, p Position) error
	List(ctx context.Context, role string) ([]Position, error)
}

// TrackingUseCase reporte de posición con throttle.
type TrackingUseCase struct {
	throttle  Throttle
	cache     PositionCache
	agents    repository.AgentRepository
	customers repository.CustomerRepository
	log       *logger.Logger
}

// NewTrackingUseCase construye el caso de uso de tracking.
func NewTrackingUseCase(
	throttle Throttle,
	cache PositionCache,
	agents repository.AgentRepository,
	customers repository.CustomerRepository,
	log *logger.Logger,
) *TrackingUseCase {
	return &TrackingUseCase{throttle: throttle, cache: cache, agents: agents, customers: customers, log: log}
}

// Report registra la posición del emisor. Dentro de la ventana de throttle el
// reporte se acepta y descarta (Stored=false); nunca es un error para el
// cliente. La escritura en caché es best-effort.
func (uc *TrackingUseCase) Report(ctx context.Context, role, id, name string, in dto.PositionUpdateRequest) (*dto.PositionUpdateResponse, error) {
	if role != RoleAgent && role != RoleCustomer {
		return nil, fmt.Errorf("%w: rol %q no reporta posición", domain.ErrInvalidInput, role)
	}
	if in.Lat < -90 || in.Lat > 90 || in.Lng < -180 || in.Lng > 180 {
		return nil, fmt.Errorf("%w: coordenadas fuera de rango", domain.ErrInvalidInput)
	}

	allowed, err := uc.throttle.Allow(ctx, role, id)
	if err != nil {
		return nil, fmt.Errorf("consultar throttle: %w", err)
	}
	if !allowed {
		return &dto.PositionUpdateResponse{Stored: false}, nil
	}

	if role == RoleAgent {
		err = uc.agents.UpdatePosition(id, in.Lat, in.Lng)
	} else {
		err = uc.customers.UpdatePosition(id, in.Lat, in.Lng)
	}
	if err != nil {
		return nil, fmt.Errorf("guardar posición: %w", err)
	}

	if err := uc.cache.Set(ctx, role, Position{
		ID:        id,
		Name:      name,
		Lat:       in.Lat,
		Lng:       in.Lng,
		UpdatedAt: time.Now(),
	}); err != nil {
		uc.log.Warn().Err(err).Str("role", role).Str("id", id).Msg("no se pudo cachear la posición")
	}

	return &dto.PositionUpdateResponse{Stored: true}, nil
}
