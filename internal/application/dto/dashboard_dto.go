package dto

import "github.com/shopspring/decimal"

// AdminSummaryDTO respuesta de GET /api/admin/dashboard.
type AdminSummaryDTO struct {
	TotalAgents    int64           `json:"total_agents"`
	PendingAgents  int64           `json:"pending_agents"`
	TotalCustomers int64           `json:"total_customers"`
	TotalServices  int64           `json:"total_services"` // servicios completados
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	RevenueChart   []MonthlyPoint  `json:"revenue_chart"` // últimos 6 meses
}

// MonthlyPoint un punto de la serie mensual del panel.
type MonthlyPoint struct {
	Name     string          `json:"name"` // etiqueta corta del mes, ej: "Aug"
	Revenue  decimal.Decimal `json:"revenue"`
	Services int64           `json:"services"`
}

// AgentSummaryDTO respuesta de GET /api/agent/dashboard.
type AgentSummaryDTO struct {
	TotalVisits int64             `json:"total_visits"`
	Conversions int64             `json:"conversions"` // visitas completadas
	Earnings    decimal.Decimal   `json:"earnings"`    // conversions × tarifa
	Chart       []AgentChartPoint `json:"chart"`       // visitas por mes
}

// AgentChartPoint un punto de la serie mensual del agente.
type AgentChartPoint struct {
	Name   string `json:"name"`
	Visits int64  `json:"visits"`
}

// MapPointDTO posición para el mapa en vivo del admin.
type MapPointDTO struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Detail string  `json:"detail,omitempty"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
}

// MapFeedDTO respuesta de GET /api/admin/map.
type MapFeedDTO struct {
	Agents    []MapPointDTO `json:"agents"`
	Customers []MapPointDTO `json:"customers"`
}
