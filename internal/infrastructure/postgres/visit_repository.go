package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

const visitColumns = `id, agent_id, customer_id, customer_name, business_type, notes,
	risk_assessment, service_recommendations, follow_up_date, status, task_types,
	photo_key, voice_note_key, created_at`

// VisitRepo implementación de VisitRepository (usable con pool o tx).
type VisitRepo struct {
	q Querier
}

// NewVisitRepository construye el adaptador. Pasar pool o tx (Querier).
func NewVisitRepository(q Querier) *VisitRepo {
	return &VisitRepo{q: q}
}

// Create persiste una visita.
func (r *VisitRepo) Create(visit *entity.Visit) error {
	query := `
		INSERT INTO visits (id, agent_id, customer_id, customer_name, business_type, notes,
			risk_assessment, service_recommendations, follow_up_date, status, task_types,
			photo_key, voice_note_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		visit.ID, visit.AgentID, visit.CustomerID, visit.CustomerName, visit.BusinessType,
		visit.Notes, visit.RiskAssessment, visit.ServiceRecommendations, visit.FollowUpDate,
		visit.Status, visit.TaskTypes, visit.PhotoKey, visit.VoiceNoteKey, visit.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

// GetByID obtiene una visita por ID.
func (r *VisitRepo) GetByID(id string) (*entity.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE id = $1`
	var v entity.Visit
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.AgentID, &v.CustomerID, &v.CustomerName, &v.BusinessType, &v.Notes,
		&v.RiskAssessment, &v.ServiceRecommendations, &v.FollowUpDate, &v.Status,
		&v.TaskTypes, &v.PhotoKey, &v.VoiceNoteKey, &v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get visit: %w", err)
	}
	return &v, nil
}

// ListByAgent historial de visitas del agente, más recientes primero.
func (r *VisitRepo) ListByAgent(agentID string, limit, offset int) ([]*entity.Visit, error) {
	query := `
		SELECT ` + visitColumns + `
		FROM visits WHERE agent_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, agentID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list visits by agent: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByCustomer visitas de un cliente, más recientes primero.
func (r *VisitRepo) ListByCustomer(customerID string) ([]*entity.Visit, error) {
	query := `
		SELECT ` + visitColumns + `
		FROM visits WHERE customer_id = $1
		ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list visits by customer: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListVisitedCustomers clientes distintos visitados por el agente, ordenados
// por última visita descendente.
func (r *VisitRepo) ListVisitedCustomers(agentID string) ([]repository.VisitedCustomerRow, error) {
	query := `
		SELECT c.id, c.business_name, c.address, c.business_type,
			MAX(v.created_at) AS last_visit, COUNT(v.id) AS visit_count
		FROM visits v
		JOIN customers c ON c.id = v.customer_id
		WHERE v.agent_id = $1
		GROUP BY c.id, c.business_name, c.address, c.business_type
		ORDER BY last_visit DESC`
	rows, err := r.q.Query(context.Background(), query, agentID)
	if err != nil {
		return nil, fmt.Errorf("list visited customers: %w", err)
	}
	defer rows.Close()

	var list []repository.VisitedCustomerRow
	for rows.Next() {
		var row repository.VisitedCustomerRow
		if err := rows.Scan(
			&row.CustomerID, &row.BusinessName, &row.Address, &row.BusinessType,
			&row.LastVisit, &row.VisitCount,
		); err != nil {
			return nil, fmt.Errorf("scan visited customer: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

func (r *VisitRepo) scanAll(rows pgx.Rows) ([]*entity.Visit, error) {
	var list []*entity.Visit
	for rows.Next() {
		var v entity.Visit
		if err := rows.Scan(
			&v.ID, &v.AgentID, &v.CustomerID, &v.CustomerName, &v.BusinessType, &v.Notes,
			&v.RiskAssessment, &v.ServiceRecommendations, &v.FollowUpDate, &v.Status,
			&v.TaskTypes, &v.PhotoKey, &v.VoiceNoteKey, &v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
