package entity

import "time"

// Estados de un Agent. Un agente entra Pending al registrarse y solo puede
// iniciar sesión cuando un admin lo aprueba.
const (
	AgentStatusPending  = "Pending"
	AgentStatusActive   = "Active"
	AgentStatusRejected = "Rejected"
)

// Agent representa un agente de campo que registra visitas y ejecuta servicios.
type Agent struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Phone        string
	Territory    string
	Status       string // Pending, Active, Rejected
	Lat          *float64
	Lng          *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
