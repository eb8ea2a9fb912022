package repository

import "github.com/sawaid25/aixosfire-api/internal/domain/entity"

// ServiceWithDetails un servicio con los nombres ya resueltos para listados
// (join con customers y agents).
type ServiceWithDetails struct {
	entity.Service
	CustomerName    string
	CustomerAddress string
	AgentName       string
}

// ServiceRepository define el puerto de persistencia para Service (reservas).
type ServiceRepository interface {
	Create(service *entity.Service) error
	CreateItem(item *entity.ServiceItem) error
	GetByID(id string) (*entity.Service, error)
	// ListWithDetails lista con datos de cliente/agente; status vacío = todos.
	// Ordena por fecha programada descendente.
	ListWithDetails(status string, limit, offset int) ([]ServiceWithDetails, error)
	ListByCustomer(customerID string) ([]*entity.Service, error)
	ListByAgent(agentID string) ([]ServiceWithDetails, error)
	// UpdateAssignment fija agente y estado en una sola escritura.
	UpdateAssignment(id, agentID, status string) error
	UpdateStatus(id, status string) error
}
