package repository

import (
	"time"

	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
)

// VisitedCustomerRow fila del listado de clientes visitados por un agente
// (agrupado sobre visits, con la fecha de la última visita).
type VisitedCustomerRow struct {
	CustomerID   string
	BusinessName string
	Address      string
	BusinessType string
	LastVisit    time.Time
	VisitCount   int
}

// VisitRepository define el puerto de persistencia para Visit.
type VisitRepository interface {
	Create(visit *entity.Visit) error
	GetByID(id string) (*entity.Visit, error)
	ListByAgent(agentID string, limit, offset int) ([]*entity.Visit, error)
	ListByCustomer(customerID string) ([]*entity.Visit, error)
	// ListVisitedCustomers clientes distintos visitados por el agente,
	// ordenados por última visita descendente.
	ListVisitedCustomers(agentID string) ([]VisitedCustomerRow, error)
}
