// Package analytics agrega las consultas de los paneles de admin y agente:
// contadores, serie mensual de ingresos y el feed del mapa en vivo.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sawaid25/aixosfire-api/internal/application/dto"
	"github.com/sawaid25/aixosfire-api/internal/application/tracking"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
	"github.com/sawaid25/aixosfire-api/pkg/logger"
)

// Meses que cubre la serie del panel de admin.
const chartMonths = 6

// AgentConversionRate comisión plana por visita completada (SAR).
var AgentConversionRate = decimal.NewFromInt(50)

// DashboardUseCase agregaciones de solo lectura para los paneles.
type DashboardUseCase struct {
	repo  repository.AnalyticsRepository
	cache tracking.PositionCache
	log   *logger.Logger
}

// NewDashboardUseCase construye el caso de uso de paneles.
func NewDashboardUseCase(repo repository.AnalyticsRepository, cache tracking.PositionCache, log *logger.Logger) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, cache: cache, log: log}
}

// AdminSummary contadores globales y serie de ingresos de los últimos 6 meses.
// El ingreso es derivado: conteo de servicios completados por tipo × tarifa
// plana del tipo; no existe tabla de pagos.
func (uc *DashboardUseCase) AdminSummary(ctx context.Context) (*dto.AdminSummaryDTO, error) {
	totalAgents, err := uc.repo.CountAgents(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar agentes: %w", err)
	}
	pendingAgents, err := uc.repo.CountAgentsByStatus(ctx, entity.AgentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("contar agentes pendientes: %w", err)
	}
	totalCustomers, err := uc.repo.CountCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("contar clientes: %w", err)
	}
	completed, err := uc.repo.CountServicesByStatus(ctx, entity.ServiceStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("contar servicios completados: %w", err)
	}
	rows, err := uc.repo.GetCompletedServicesByTypeAndMonth(ctx, chartMonths)
	if err != nil {
		return nil, fmt.Errorf("agrupar servicios por mes: %w", err)
	}

	chart := BuildRevenueChart(rows, chartMonths, time.Now())
	total := decimal.Zero
	for _, p := range chart {
		total = total.Add(p.Revenue)
	}

	return &dto.AdminSummaryDTO{
		TotalAgents:    totalAgents,
		PendingAgents:  pendingAgents,
		TotalCustomers: totalCustomers,
		TotalServices:  completed,
		TotalRevenue:   total,
		RevenueChart:   chart,
	}, nil
}

// AgentSummary panel del agente: visitas totales, conversiones y comisión.
func (uc *DashboardUseCase) AgentSummary(ctx context.Context, agentID string) (*dto.AgentSummaryDTO, error) {
	total, err := uc.repo.CountVisitsByAgent(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("contar visitas: %w", err)
	}
	conversions, err := uc.repo.CountVisitsByAgentAndStatus(ctx, agentID, entity.VisitStatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("contar conversiones: %w", err)
	}
	monthly, err := uc.repo.GetAgentMonthlyVisits(ctx, agentID, chartMonths)
	if err != nil {
		return nil, fmt.Errorf("agrupar visitas por mes: %w", err)
	}

	return &dto.AgentSummaryDTO{
		TotalVisits: total,
		Conversions: conversions,
		Earnings:    AgentConversionRate.Mul(decimal.NewFromInt(conversions)),
		Chart:       buildAgentChart(monthly, chartMonths, time.Now()),
	}, nil
}

// MapFeed posiciones de agentes y clientes para el mapa del admin. Parte de
// las posiciones persistidas y las pisa con la caché, que es más fresca. Una
// caché caída degrada a solo BD.
func (uc *DashboardUseCase) MapFeed(ctx context.Context) (*dto.MapFeedDTO, error) {
	agents, err := uc.repo.ListAgentPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("posiciones de agentes: %w", err)
	}
	customers, err := uc.repo.ListCustomerPositions(ctx)
	if err != nil {
		return nil, fmt.Errorf("posiciones de clientes: %w", err)
	}

	return &dto.MapFeedDTO{
		Agents:    uc.mergeWithCache(ctx, tracking.RoleAgent, agents),
		Customers: uc.mergeWithCache(ctx, tracking.RoleCustomer, customers),
	}, nil
}

func (uc *DashboardUseCase) mergeWithCache(ctx context.Context, role string, stored []repository.MapPoint) []dto.MapPointDTO {
	byID := make(map[string]dto.MapPointDTO, len(stored))
	order := make([]string, 0, len(stored))
	for _, p := range stored {
		byID[p.ID] = dto.MapPointDTO{ID: p.ID, Name: p.Name, Detail: p.Detail, Lat: p.Lat, Lng: p.Lng}
		order = append(order, p.ID)
	}

	cached, err := uc.cache.List(ctx, role)
	if err != nil {
		uc.log.Warn().Err(err).Str("role", role).Msg("caché de posiciones no disponible, se usa solo BD")
	}
	for _, p := range cached {
		if existing, ok := byID[p.ID]; ok {
			existing.Lat = p.Lat
			existing.Lng = p.Lng
			byID[p.ID] = existing
			continue
		}
		byID[p.ID] = dto.MapPointDTO{ID: p.ID, Name: p.Name, Detail: p.Detail, Lat: p.Lat, Lng: p.Lng}
		order = append(order, p.ID)
	}

	out := make([]dto.MapPointDTO, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}

// BuildRevenueChart pliega los conteos por tipo y mes en la serie del panel:
// un punto por mes, del más antiguo al actual, con meses vacíos en cero.
func BuildRevenueChart(rows []repository.ServiceTypeMonthCount, months int, now time.Time) []dto.MonthlyPoint {
	type bucket struct {
		revenue  decimal.Decimal
		services int64
	}
	buckets := make(map[string]*bucket, months)
	for _, r := range rows {
		key := monthKey(r.Month)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{revenue: decimal.Zero}
			buckets[key] = b
		}
		b.services += r.Count
		b.revenue = b.revenue.Add(entity.ServiceBasePrice(r.ServiceType).Mul(decimal.NewFromInt(r.Count)))
	}

	out := make([]dto.MonthlyPoint, 0, months)
	for _, m := range lastMonths(now, months) {
		point := dto.MonthlyPoint{Name: m.Format("Jan"), Revenue: decimal.Zero}
		if b, ok := buckets[monthKey(m)]; ok {
			point.Revenue = b.revenue
			point.Services = b.services
		}
		out = append(out, point)
	}
	return out
}

func buildAgentChart(rows []repository.MonthCount, months int, now time.Time) []dto.AgentChartPoint {
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[monthKey(r.Month)] += r.Count
	}
	out := make([]dto.AgentChartPoint, 0, months)
	for _, m := range lastMonths(now, months) {
		out = append(out, dto.AgentChartPoint{Name: m.Format("Jan"), Visits: counts[monthKey(m)]})
	}
	return out
}

// lastMonths primeros días de los últimos n meses, del más antiguo al actual.
func lastMonths(now time.Time, n int) []time.Time {
	out := make([]time.Time, 0, n)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	for i := n - 1; i >= 0; i-- {
		out = append(out, first.AddDate(0, -i, 0))
	}
	return out
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
