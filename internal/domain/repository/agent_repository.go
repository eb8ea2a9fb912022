package repository

import "github.com/sawaid25/aixosfire-api/internal/domain/entity"

// AgentRepository define el puerto de persistencia para Agent.
type AgentRepository interface {
	Create(agent *entity.Agent) error
	GetByID(id string) (*entity.Agent, error)
	GetByEmail(email string) (*entity.Agent, error)
	ListByStatus(status string, limit, offset int) ([]*entity.Agent, error)
	// UpdateStatus cambia el estado de aprobación (Pending -> Active/Rejected).
	UpdateStatus(id, status string) error
	// UpdatePosition actualiza la última posición conocida del agente.
	UpdatePosition(id string, lat, lng float64) error
}
