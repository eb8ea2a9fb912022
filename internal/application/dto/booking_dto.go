package dto

import "time"

// CreateBookingRequest solicitud de servicio de un cliente.
type CreateBookingRequest struct {
	ServiceType     string   `json:"service_type" validate:"required,oneof=inspection refilling installation"`
	ScheduledDate   string   `json:"scheduled_date" validate:"required"` // YYYY-MM-DD
	Notes           string   `json:"notes"`
	ExtinguisherIDs []string `json:"extinguisher_ids,omitempty"` // solo refilling
}

// AssignAgentRequest asignación de agente por el admin.
type AssignAgentRequest struct {
	AgentID string `json:"agent_id" validate:"required,uuid"`
}

// ServiceResponse una reserva en listados.
type ServiceResponse struct {
	ID              string    `json:"id"`
	CustomerID      string    `json:"customer_id"`
	CustomerName    string    `json:"customer_name,omitempty"`
	CustomerAddress string    `json:"customer_address,omitempty"`
	AgentID         string    `json:"agent_id,omitempty"`
	AgentName       string    `json:"agent_name,omitempty"`
	ServiceType     string    `json:"service_type"`
	Notes           string    `json:"notes,omitempty"`
	ScheduledDate   string    `json:"scheduled_date,omitempty"` // YYYY-MM-DD
	RequestDate     time.Time `json:"request_date"`
	Status          string    `json:"status"`
}
