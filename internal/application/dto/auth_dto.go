package dto

import "time"

// LoginRequest entrada para login. El rol determina contra qué tabla se valida.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin agent customer"`
}

// SessionUser usuario autenticado (sin password).
type SessionUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse salida con token JWT y el usuario resuelto.
type LoginResponse struct {
	Token string      `json:"token"`
	User  SessionUser `json:"user"`
}

// RegisterAgentRequest registro de agente de campo (queda Pending hasta aprobación).
type RegisterAgentRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Phone     string `json:"phone" validate:"omitempty,max=30"`
	Territory string `json:"territory" validate:"required,max=120"`
}

// RegisterCustomerRequest auto-registro de cliente (queda Active).
type RegisterCustomerRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8"`
	BusinessName string `json:"business_name" validate:"required,max=200"`
	OwnerName    string `json:"owner_name" validate:"omitempty,max=200"`
	Phone        string `json:"phone" validate:"omitempty,max=30"`
	Address      string `json:"address" validate:"omitempty,max=300"`
	BusinessType string `json:"business_type" validate:"omitempty,max=120"`
}
