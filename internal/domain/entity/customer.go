package entity

import "time"

// Estados de ciclo de vida de un Customer.
const (
	CustomerStatusLead     = "Lead"     // creado implícitamente durante una visita
	CustomerStatusActive   = "Active"   // auto-registrado o confirmado
	CustomerStatusInactive = "Inactive"
)

// LeadPasswordPlaceholder marcador que se persiste como "password" de un Lead
// creado en campo. Nunca es una credencial real: un Lead no puede iniciar
// sesión hasta que se registre y fije una contraseña propia.
const LeadPasswordPlaceholder = "lead-no-credential"

// Customer representa un negocio cliente del marketplace.
// Es creado por auto-registro (status Active) o por un agente durante una
// visita cuando no hay match en la búsqueda (status Lead).
type Customer struct {
	ID           string
	BusinessName string
	OwnerName    string
	Email        string
	PasswordHash string // bcrypt, o LeadPasswordPlaceholder si es Lead
	Phone        string
	Address      string
	BusinessType string
	Status       string // Lead, Active, Inactive
	QRCodeURL    string // data URL del QR de identidad; vacío hasta generarse
	Lat          *float64
	Lng          *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
