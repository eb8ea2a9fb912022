package usecase

import (
	"fmt"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
)

// AgentUseCase operaciones sobre agentes: su cartera de clientes visitados,
// su historial de visitas y la aprobación de cuentas por el admin.
type AgentUseCase struct {
	agents repository.AgentRepository
	visits repository.VisitRepository
	log    *logger.Logger
}

// NewAgentUseCase construye el caso de uso de agentes.
func NewAgentUseCase(agents repository.AgentRepository, visits repository.VisitRepository, log *logger.Logger) *AgentUseCase {
	return &AgentUseCase{agents: agents, visits: visits, log: log}
}

// VisitedCustomers clientes distintos visitados por el agente, última visita
// primero. Es el listado "mis clientes" de la app de campo.
func (uc *AgentUseCase) VisitedCustomers(agentID string) ([]dto.VisitedCustomerResponse, error) {
	rows, err := uc.visits.ListVisitedCustomers(agentID)
	if err != nil {
		return nil, fmt.Errorf("listar clientes visitados: %w", err)
	}
	out := make([]dto.VisitedCustomerResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.VisitedCustomerResponse{
			CustomerID:   r.CustomerID,
			BusinessName: r.BusinessName,
			Address:      r.Address,
			BusinessType: r.BusinessType,
			LastVisit:    r.LastVisit,
			VisitCount:   r.VisitCount,
		})
	}
	return out, nil
}

// Visits historial de visitas del agente, paginado.
func (uc *AgentUseCase) Visits(agentID string, page dto.PageRequest) ([]dto.VisitResponse, error) {
	visits, err := uc.visits.ListByAgent(agentID, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar visitas del agente: %w", err)
	}
	out := make([]dto.VisitResponse, 0, len(visits))
	for _, v := range visits {
		out = append(out, toVisitResponse(v))
	}
	return out, nil
}

// ListByStatus agentes filtrados por estado de aprobación (admin).
func (uc *AgentUseCase) ListByStatus(status string, page dto.PageRequest) ([]dto.SessionUser, error) {
	if status != "" && status != entity.AgentStatusPending &&
		status != entity.AgentStatusActive && status != entity.AgentStatusRejected {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	agents, err := uc.agents.ListByStatus(status, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("listar agentes: %w", err)
	}
	out := make([]dto.SessionUser, 0, len(agents))
	for _, a := range agents {
		out = append(out, dto.SessionUser{
			ID:        a.ID,
			Email:     a.Email,
			Name:      a.Name,
			Role:      "agent",
			Status:    a.Status,
			CreatedAt: a.CreatedAt,
		})
	}
	return out, nil
}

// Approve activa una cuenta de agente pendiente.
func (uc *AgentUseCase) Approve(agentID string) error {
	return uc.setStatus(agentID, entity.AgentStatusActive)
}

// Reject rechaza una cuenta de agente pendiente.
func (uc *AgentUseCase) Reject(agentID string) error {
	return uc.setStatus(agentID, entity.AgentStatusRejected)
}

func (uc *AgentUseCase) setStatus(agentID, status string) error {
	agent, err := uc.agents.GetByID(agentID)
	if err != nil {
		return err
	}
	// Solo las cuentas pendientes cambian de estado; reprocesar una cuenta ya
	// resuelta es un conflicto, no una operación idempotente.
	if agent.Status != entity.AgentStatusPending {
		return fmt.Errorf("%w: el agente ya está %s", domain.ErrConflict, agent.Status)
	}
	if err := uc.agents.UpdateStatus(agentID, status); err != nil {
		return fmt.Errorf("actualizar estado del agente: %w", err)
	}
	uc.log.Info().Str("agent_id", agentID).Str("status", status).Msg("estado de agente actualizado")
	return nil
}
