package repository

import (
	"context"
	"time"
)

// MonthCount conteo de filas por mes (primer día del mes, 00:00).
type MonthCount struct {
	Month time.Time
	Count int64
}

// ServiceTypeMonthCount conteo de servicios completados por tipo y mes.
// El precio por tipo vive en el dominio (ServiceBasePrice); el repositorio
// solo agrupa, el caso de uso convierte a ingresos.
type ServiceTypeMonthCount struct {
	Month       time.Time
	ServiceType string
	Count       int64
}

// MapPoint posición de un agente o cliente para el mapa en vivo.
type MapPoint struct {
	ID     string
	Name   string
	Detail string // territorio (agente) o dirección (cliente)
	Lat    float64
	Lng    float64
}

// AnalyticsRepository consultas de solo lectura para los paneles.
type AnalyticsRepository interface {
	CountAgents(ctx context.Context) (int64, error)
	CountAgentsByStatus(ctx context.Context, status string) (int64, error)
	CountCustomers(ctx context.Context) (int64, error)
	CountServicesByStatus(ctx context.Context, status string) (int64, error)
	// GetCompletedServicesByTypeAndMonth agrupa servicios completados de los
	// últimos `months` meses por tipo y mes.
	GetCompletedServicesByTypeAndMonth(ctx context.Context, months int) ([]ServiceTypeMonthCount, error)

	CountVisitsByAgent(ctx context.Context, agentID string) (int64, error)
	CountVisitsByAgentAndStatus(ctx context.Context, agentID, status string) (int64, error)
	// GetAgentMonthlyVisits visitas del agente agrupadas por mes, últimos `months` meses.
	GetAgentMonthlyVisits(ctx context.Context, agentID string, months int) ([]MonthCount, error)

	// Posiciones persistidas con lat/lng no nulos, para el mapa del admin.
	ListAgentPositions(ctx context.Context) ([]MapPoint, error)
	ListCustomerPositions(ctx context.Context) ([]MapPoint, error)
}
