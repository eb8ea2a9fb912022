// Package booking implementa las reservas de servicio: solicitud del cliente,
// asignación de agente por el admin y el ciclo de vida de ejecución.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
)

// BookingUseCase casos de uso de reservas de servicio.
type BookingUseCase struct {
	services      repository.ServiceRepository
	agents        repository.AgentRepository
	extinguishers repository.ExtinguisherRepository
	tx            TxRunner
	log           *logger.Logger
}

// NewBookingUseCase construye el caso de uso de reservas.
func NewBookingUseCase(
	services repository.ServiceRepository,
	agents repository.AgentRepository,
	extinguishers repository.ExtinguisherRepository,
	tx TxRunner,
	log *logger.Logger,
) *BookingUseCase {
	return &BookingUseCase{services: services, agents: agents, extinguishers: extinguishers, tx: tx, log: log}
}

// Create registra una solicitud de servicio en estado Requested. Para una
// recarga con extintores seleccionados, la reserva y sus ítems se escriben en
// una sola transacción: nunca queda una recarga sin sus extintores.
func (uc *BookingUseCase) Create(ctx context.Context, customerID string, in dto.CreateBookingRequest) (*dto.ServiceResponse, error) {
	if !entity.IsValidServiceType(in.ServiceType) {
		return nil, fmt.Errorf("%w: tipo de servicio %q", domain.ErrInvalidInput, in.ServiceType)
	}
	scheduled, err := time.Parse("2006-01-02", in.ScheduledDate)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha programada %q", domain.ErrInvalidInput, in.ScheduledDate)
	}

	// Los ítems solo aplican a recargas; cada extintor debe pertenecer al cliente.
	if in.ServiceType != entity.ServiceTypeRefilling && len(in.ExtinguisherIDs) > 0 {
		return nil, fmt.Errorf("%w: solo las recargas llevan extintores seleccionados", domain.ErrInvalidInput)
	}
	for _, extID := range in.ExtinguisherIDs {
		ext, err := uc.extinguishers.GetByID(extID)
		if err != nil {
			return nil, fmt.Errorf("extintor %s: %w", extID, err)
		}
		if ext.CustomerID != customerID {
			return nil, domain.ErrForbidden
		}
	}

	now := time.Now()
	svc := &entity.Service{
		ID:            uuid.New().String(),
		CustomerID:    customerID,
		ServiceType:   in.ServiceType,
		Notes:         in.Notes,
		ScheduledDate: &scheduled,
		RequestDate:   now,
		Status:        entity.ServiceStatusRequested,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.tx.Run(ctx, func(services repository.ServiceRepository) error {
		if err := services.Create(svc); err != nil {
			return fmt.Errorf("crear reserva: %w", err)
		}
		for _, extID := range in.ExtinguisherIDs {
			item := &entity.ServiceItem{
				ID:             uuid.New().String(),
				ServiceID:      svc.ID,
				ExtinguisherID: extID,
			}
			if err := services.CreateItem(item); err != nil {
				return fmt.Errorf("crear ítem de reserva: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("service_id", svc.ID).
		Str("customer_id", customerID).
		Str("type", svc.ServiceType).
		Int("items", len(in.ExtinguisherIDs)).
		Msg("reserva creada")

	return toServiceResponse(svc), nil
}

// Assign asigna un agente activo a una reserva Requested y la pasa a
// Scheduled en una sola escritura.
func (uc *BookingUseCase) Assign(svcID string, in dto.AssignAgentRequest) error {
	svc, err := uc.services.GetByID(svcID)
	if err != nil {
		return err
	}
	if !entity.CanTransition(svc.Status, entity.ServiceStatusScheduled) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, svc.Status, entity.ServiceStatusScheduled)
	}
	agent, err := uc.agents.GetByID(in.AgentID)
	if err != nil {
		return err
	}
	if agent.Status != entity.AgentStatusActive {
		return fmt.Errorf("%w: el agente no está activo", domain.ErrConflict)
	}
	return uc.services.UpdateAssignment(svcID, in.AgentID, entity.ServiceStatusScheduled)
}

// Start pasa una reserva Scheduled a In Progress. Solo el agente asignado.
func (uc *BookingUseCase) Start(svcID, agentID string) error {
	return uc.transitionByAgent(svcID, agentID, entity.ServiceStatusInProgress)
}

// Complete cierra una reserva In Progress. Solo el agente asignado.
func (uc *BookingUseCase) Complete(svcID, agentID string) error {
	return uc.transitionByAgent(svcID, agentID, entity.ServiceStatusCompleted)
}

// Cancel cancela una reserva que aún no ha iniciado. El cliente dueño o el
// admin (customerID vacío) pueden cancelar.
func (uc *BookingUseCase) Cancel(svcID, customerID string) error {
	svc, err := uc.services.GetByID(svcID)
	if err != nil {
		return err
	}
	if customerID != "" && svc.CustomerID != customerID {
		return domain.ErrForbidden
	}
	if !entity.CanTransition(svc.Status, entity.ServiceStatusCancelled) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, svc.Status, entity.ServiceStatusCancelled)
	}
	return uc.services.UpdateStatus(svcID, entity.ServiceStatusCancelled)
}

func (uc *BookingUseCase) transitionByAgent(svcID, agentID, next string) error {
	svc, err := uc.services.GetByID(svcID)
	if err != nil {
		return err
	}
	if svc.AgentID != agentID {
		return domain.ErrForbidden
	}
	if !entity.CanTransition(svc.Status, next) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, svc.Status, next)
	}
	return uc.services.UpdateStatus(svcID, next)
}

// List listado para el admin, con filtro opcional por estado.
func (uc *BookingUseCase) List(status string, page dto.PageRequest) ([]dto.ServiceResponse, error) {
	rows, err := uc.services.ListWithDetails(status, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar reservas: %w", err)
	}
	out := make([]dto.ServiceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, *toDetailedResponse(r))
	}
	return out, nil
}

// ListByCustomer reservas del cliente autenticado.
func (uc *BookingUseCase) ListByCustomer(customerID string) ([]dto.ServiceResponse, error) {
	rows, err := uc.services.ListByCustomer(customerID)
	if err != nil {
		return nil, fmt.Errorf("listar reservas del cliente: %w", err)
	}
	out := make([]dto.ServiceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, *toServiceResponse(r))
	}
	return out, nil
}

// ListByAgent reservas asignadas al agente autenticado.
func (uc *BookingUseCase) ListByAgent(agentID string) ([]dto.ServiceResponse, error) {
	rows, err := uc.services.ListByAgent(agentID)
	if err != nil {
		return nil, fmt.Errorf("listar reservas del agente: %w", err)
	}
	out := make([]dto.ServiceResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, *toDetailedResponse(r))
	}
	return out, nil
}

func toServiceResponse(s *entity.Service) *dto.ServiceResponse {
	resp := &dto.ServiceResponse{
		ID:          s.ID,
		CustomerID:  s.CustomerID,
		AgentID:     s.AgentID,
		ServiceType: s.ServiceType,
		Notes:       s.Notes,
		RequestDate: s.RequestDate,
		Status:      s.Status,
	}
	if s.ScheduledDate != nil {
		resp.ScheduledDate = s.ScheduledDate.Format("2006-01-02")
	}
	return resp
}

func toDetailedResponse(r repository.ServiceWithDetails) *dto.ServiceResponse {
	resp := toServiceResponse(&r.Service)
	resp.CustomerName = r.CustomerName
	resp.CustomerAddress = r.CustomerAddress
	resp.AgentName = r.AgentName
	return resp
}
