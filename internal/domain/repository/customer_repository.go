package repository

import "github.com/sawaid25/aixosfire-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
// El flujo de visita solo asume primitivas find/insert/update: no hay
// agrupación transaccional sobre este puerto.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByEmail(email string) (*entity.Customer, error)
	// Search busca por substring case-insensitive de business_name o phone.
	Search(query string, limit int) ([]*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	// UpdateQRCodeURL persiste el data URL del QR de identidad.
	UpdateQRCodeURL(id, dataURL string) error
	// UpdatePosition actualiza la última posición conocida del cliente.
	UpdatePosition(id string, lat, lng float64) error
}
