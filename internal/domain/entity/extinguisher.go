package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de tarea por línea de inventario durante una visita.
const (
	TaskModeValidation = "Validation" // inspección de unidad existente
	TaskModeRefill     = "Refill"     // recarga de unidad existente
	TaskModeNewUnit    = "New Unit"   // instalación de unidad nueva
)

// Estados de un extintor, derivados del modo de tarea al crearse.
const (
	ExtinguisherStatusNew      = "New"
	ExtinguisherStatusRefilled = "Refilled"
	ExtinguisherStatusValid    = "Valid"
)

// StatusForMode deriva el estado del extintor a partir del modo de la línea.
func StatusForMode(mode string) string {
	switch mode {
	case TaskModeNewUnit:
		return ExtinguisherStatusNew
	case TaskModeRefill:
		return ExtinguisherStatusRefilled
	default:
		return ExtinguisherStatusValid
	}
}

// Extinguisher una unidad de inventario de un cliente, producida o actualizada
// por una visita. Los campos de procedencia varían según el modo: brand/seller
// para unidades nuevas, partner/refill_status para recargas.
type Extinguisher struct {
	ID           string
	CustomerID   string
	VisitID      string
	Type         string // ABC Dry Powder, CO2, Water Type, ...
	Capacity     string // 1kg ... 25kg
	Quantity     int
	ExpiryDate   *time.Time
	Condition    string // Good, Fair, Poor, Expired, Damaged
	Status       string // New, Refilled, Valid
	Brand        string
	Seller       string
	Partner      string
	RefillStatus string // Required, In Process, Completed
	Price        decimal.Decimal
	CreatedAt    time.Time
}

// IsExpired indica si la unidad está vencida respecto a now.
func (e *Extinguisher) IsExpired(now time.Time) bool {
	return e.ExpiryDate != nil && e.ExpiryDate.Before(now)
}
