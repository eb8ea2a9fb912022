package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para los paneles de admin y agente.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// CountAgents total de agentes registrados.
func (r *AnalyticsRepo) CountAgents(ctx context.Context) (int64, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM agents`)
}

// CountAgentsByStatus agentes en un estado de aprobación.
func (r *AnalyticsRepo) CountAgentsByStatus(ctx context.Context, status string) (int64, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM agents WHERE status = $1`, status)
}

// CountCustomers total de clientes (leads incluidos).
func (r *AnalyticsRepo) CountCustomers(ctx context.Context) (int64, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM customers`)
}

// CountServicesByStatus reservas en un estado dado.
func (r *AnalyticsRepo) CountServicesByStatus(ctx context.Context, status string) (int64, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM services WHERE status = $1`, status)
}

// GetCompletedServicesByTypeAndMonth agrupa servicios completados de los
// últimos `months` meses por tipo y mes. El ingreso se deriva en el caso de
// uso con la tarifa plana por tipo.
func (r *AnalyticsRepo) GetCompletedServicesByTypeAndMonth(ctx context.Context, months int) ([]repository.ServiceTypeMonthCount, error) {
	const query = `
	SELECT
	    date_trunc('month', updated_at) AS month,
	    service_type,
	    COUNT(*)                        AS total
	FROM services
	WHERE status = 'Completed'
	  AND updated_at >= date_trunc('month', NOW()) - ($1 || ' months')::interval
	GROUP BY month, service_type
	ORDER BY month`

	rows, err := r.pool.Query(ctx, query, months-1)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetCompletedServicesByTypeAndMonth: %w", err)
	}
	defer rows.Close()

	var results []repository.ServiceTypeMonthCount
	for rows.Next() {
		var row repository.ServiceTypeMonthCount
		if err := rows.Scan(&row.Month, &row.ServiceType, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics: scan service month: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// CountVisitsByAgent total de visitas registradas por el agente.
func (r *AnalyticsRepo) CountVisitsByAgent(ctx context.Context, agentID string) (int64, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM visits WHERE agent_id = $1`, agentID)
}

// CountVisitsByAgentAndStatus visitas del agente en un estado dado.
func (r *AnalyticsRepo) CountVisitsByAgentAndStatus(ctx context.Context, agentID, status string) (int64, error) {
	return r.countRow(ctx, `SELECT COUNT(*) FROM visits WHERE agent_id = $1 AND status = $2`, agentID, status)
}

// GetAgentMonthlyVisits visitas del agente agrupadas por mes, últimos `months` meses.
func (r *AnalyticsRepo) GetAgentMonthlyVisits(ctx context.Context, agentID string, months int) ([]repository.MonthCount, error) {
	const query = `
	SELECT date_trunc('month', created_at) AS month, COUNT(*) AS total
	FROM visits
	WHERE agent_id = $1
	  AND created_at >= date_trunc('month', NOW()) - ($2 || ' months')::interval
	GROUP BY month
	ORDER BY month`

	rows, err := r.pool.Query(ctx, query, agentID, months-1)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetAgentMonthlyVisits: %w", err)
	}
	defer rows.Close()

	var results []repository.MonthCount
	for rows.Next() {
		var row repository.MonthCount
		if err := rows.Scan(&row.Month, &row.Count); err != nil {
			return nil, fmt.Errorf("analytics: scan month count: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ListAgentPositions agentes activos con posición persistida.
func (r *AnalyticsRepo) ListAgentPositions(ctx context.Context) ([]repository.MapPoint, error) {
	const query = `
	SELECT id, name, territory, lat, lng
	FROM agents
	WHERE status = 'Active' AND lat IS NOT NULL AND lng IS NOT NULL`
	return r.listPoints(ctx, query, "analytics.ListAgentPositions")
}

// ListCustomerPositions clientes con posición persistida.
func (r *AnalyticsRepo) ListCustomerPositions(ctx context.Context) ([]repository.MapPoint, error) {
	const query = `
	SELECT id, business_name, address, lat, lng
	FROM customers
	WHERE lat IS NOT NULL AND lng IS NOT NULL`
	return r.listPoints(ctx, query, "analytics.ListCustomerPositions")
}

func (r *AnalyticsRepo) countRow(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics: count: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) listPoints(ctx context.Context, query, op string) ([]repository.MapPoint, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var points []repository.MapPoint
	for rows.Next() {
		var p repository.MapPoint
		if err := rows.Scan(&p.ID, &p.Name, &p.Detail, &p.Lat, &p.Lng); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
