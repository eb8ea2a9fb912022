package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de servicio que un cliente puede reservar.
const (
	ServiceTypeInspection   = "inspection"
	ServiceTypeRefilling    = "refilling"
	ServiceTypeInstallation = "installation"
)

// Estados de un Service (reserva).
const (
	ServiceStatusRequested  = "Requested"
	ServiceStatusScheduled  = "Scheduled"
	ServiceStatusInProgress = "In Progress"
	ServiceStatusCompleted  = "Completed"
	ServiceStatusCancelled  = "Cancelled"
)

// serviceTransitions transiciones de estado permitidas.
// Requested -> Scheduled la ejecuta el admin al asignar agente;
// Scheduled -> In Progress y In Progress -> Completed el agente;
// Cancelled solo es alcanzable antes de iniciar el trabajo.
var serviceTransitions = map[string]map[string]bool{
	ServiceStatusRequested:  {ServiceStatusScheduled: true, ServiceStatusCancelled: true},
	ServiceStatusScheduled:  {ServiceStatusInProgress: true, ServiceStatusCancelled: true},
	ServiceStatusInProgress: {ServiceStatusCompleted: true},
	ServiceStatusCompleted:  {},
	ServiceStatusCancelled:  {},
}

// CanTransition indica si el cambio de estado current -> next está permitido.
func CanTransition(current, next string) bool {
	nexts, ok := serviceTransitions[current]
	if !ok {
		return false
	}
	return nexts[next]
}

// ServiceBasePrice tarifa plana por tipo de servicio (SAR), usada para el
// cálculo de ingresos del panel de administración.
func ServiceBasePrice(serviceType string) decimal.Decimal {
	switch serviceType {
	case ServiceTypeInspection:
		return decimal.NewFromInt(50)
	case ServiceTypeRefilling:
		return decimal.NewFromInt(65)
	case ServiceTypeInstallation:
		return decimal.NewFromInt(150)
	default:
		return decimal.NewFromInt(50)
	}
}

// IsValidServiceType valida el tipo de servicio de una reserva.
func IsValidServiceType(t string) bool {
	return t == ServiceTypeInspection || t == ServiceTypeRefilling || t == ServiceTypeInstallation
}

// Service una reserva de servicio de un cliente. AgentID queda vacío hasta
// que el admin asigna un agente activo.
type Service struct {
	ID            string
	CustomerID    string
	AgentID       string // vacío = sin asignar
	ServiceType   string
	Notes         string
	ScheduledDate *time.Time
	RequestDate   time.Time
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ServiceItem un extintor concreto incluido en una reserva de recarga.
type ServiceItem struct {
	ID             string
	ServiceID      string
	ExtinguisherID string
}
