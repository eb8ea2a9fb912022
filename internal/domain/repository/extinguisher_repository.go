package repository

import "github.com/sawaid25/aixosfire-api/internal/domain/entity"

// ExtinguisherRepository define el puerto de persistencia para Extinguisher.
type ExtinguisherRepository interface {
	// CreateBatch inserta las líneas de inventario de una visita.
	CreateBatch(items []*entity.Extinguisher) error
	GetByID(id string) (*entity.Extinguisher, error)
	ListByCustomer(customerID string) ([]*entity.Extinguisher, error)
	ListByVisit(visitID string) ([]*entity.Extinguisher, error)
}
