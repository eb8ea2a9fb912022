package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerCandidate resultado de búsqueda del wizard (paso 1): lo justo para
// identificar el negocio y copiar sus campos al borrador.
type CustomerCandidate struct {
	ID           string `json:"id"`
	BusinessName string `json:"business_name"`
	OwnerName    string `json:"owner_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	BusinessType string `json:"business_type"`
}

// CustomerResponse salida completa de un cliente (directorio, detalle).
type CustomerResponse struct {
	ID           string    `json:"id"`
	BusinessName string    `json:"business_name"`
	OwnerName    string    `json:"owner_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Address      string    `json:"address"`
	BusinessType string    `json:"business_type"`
	Status       string    `json:"status"`
	QRCodeURL    string    `json:"qr_code_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// ExtinguisherResponse una unidad del inventario de un cliente.
type ExtinguisherResponse struct {
	ID           string          `json:"id"`
	CustomerID   string          `json:"customer_id"`
	VisitID      string          `json:"visit_id"`
	Type         string          `json:"type"`
	Capacity     string          `json:"capacity"`
	Quantity     int             `json:"quantity"`
	ExpiryDate   string          `json:"expiry_date,omitempty"` // YYYY-MM-DD
	Condition    string          `json:"condition"`
	Status       string          `json:"status"`
	Brand        string          `json:"brand,omitempty"`
	Seller       string          `json:"seller,omitempty"`
	Partner      string          `json:"partner,omitempty"`
	RefillStatus string          `json:"refill_status,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Expired      bool            `json:"expired"`
}

// VisitResponse una visita en historiales y detalle de cliente.
type VisitResponse struct {
	ID                     string    `json:"id"`
	AgentID                string    `json:"agent_id"`
	CustomerID             string    `json:"customer_id"`
	CustomerName           string    `json:"customer_name"`
	BusinessType           string    `json:"business_type"`
	Notes                  string    `json:"notes,omitempty"`
	RiskAssessment         string    `json:"risk_assessment,omitempty"`
	ServiceRecommendations string    `json:"service_recommendations,omitempty"`
	FollowUpDate           string    `json:"follow_up_date,omitempty"`
	Status                 string    `json:"status"`
	TaskTypes              string    `json:"task_types"`
	CreatedAt              time.Time `json:"created_at"`
}

// VisitedCustomerResponse fila del listado "mis clientes" del agente.
type VisitedCustomerResponse struct {
	CustomerID   string    `json:"customer_id"`
	BusinessName string    `json:"business_name"`
	Address      string    `json:"address"`
	BusinessType string    `json:"business_type"`
	LastVisit    time.Time `json:"last_visit"`
	VisitCount   int       `json:"visit_count"`
}

// CustomerDetailResponse detalle para la vista del agente: cliente + visitas + inventario.
type CustomerDetailResponse struct {
	Customer      CustomerResponse       `json:"customer"`
	Visits        []VisitResponse        `json:"visits"`
	Extinguishers []ExtinguisherResponse `json:"extinguishers"`
}
