package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sawaid25/aixosfire-api/internal/domain"
	"github.com/sawaid25/aixosfire-api/internal/domain/entity"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
)

var _ repository.ServiceRepository = (*ServiceRepo)(nil)

// ServiceRepo implementación de ServiceRepository (usable con pool o tx).
// agent_id es NULL en BD mientras la reserva no tenga agente; en la entidad
// se representa como cadena vacía.
type ServiceRepo struct {
	q Querier
}

// NewServiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewServiceRepository(q Querier) *ServiceRepo {
	return &ServiceRepo{q: q}
}

// Create persiste una reserva.
func (r *ServiceRepo) Create(service *entity.Service) error {
	query := `
		INSERT INTO services (id, customer_id, agent_id, service_type, notes,
			scheduled_date, request_date, status, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		service.ID, service.CustomerID, service.AgentID, service.ServiceType, service.Notes,
		service.ScheduledDate, service.RequestDate, service.Status, service.CreatedAt, service.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

// CreateItem persiste un extintor incluido en una reserva de recarga.
func (r *ServiceRepo) CreateItem(item *entity.ServiceItem) error {
	query := `INSERT INTO service_items (id, service_id, extinguisher_id) VALUES ($1, $2, $3)`
	_, err := r.q.Exec(context.Background(), query, item.ID, item.ServiceID, item.ExtinguisherID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert service item: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID.
func (r *ServiceRepo) GetByID(id string) (*entity.Service, error) {
	query := `
		SELECT id, customer_id, COALESCE(agent_id::text, ''), service_type, notes,
			scheduled_date, request_date, status, created_at, updated_at
		FROM services WHERE id = $1`
	var s entity.Service
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.CustomerID, &s.AgentID, &s.ServiceType, &s.Notes,
		&s.ScheduledDate, &s.RequestDate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get service: %w", err)
	}
	return &s, nil
}

// ListWithDetails lista con nombres de cliente y agente resueltos; status
// vacío = todos. Ordena por fecha programada descendente.
func (r *ServiceRepo) ListWithDetails(status string, limit, offset int) ([]repository.ServiceWithDetails, error) {
	query := `
		SELECT s.id, s.customer_id, COALESCE(s.agent_id::text, ''), s.service_type, s.notes,
			s.scheduled_date, s.request_date, s.status, s.created_at, s.updated_at,
			c.business_name, c.address, COALESCE(a.name, '')
		FROM services s
		JOIN customers c ON c.id = s.customer_id
		LEFT JOIN agents a ON a.id = s.agent_id
		WHERE ($1 = '' OR s.status = $1)
		ORDER BY s.scheduled_date DESC NULLS LAST
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()
	return r.scanDetails(rows)
}

// ListByCustomer reservas de un cliente, más recientes primero.
func (r *ServiceRepo) ListByCustomer(customerID string) ([]*entity.Service, error) {
	query := `
		SELECT id, customer_id, COALESCE(agent_id::text, ''), service_type, notes,
			scheduled_date, request_date, status, created_at, updated_at
		FROM services WHERE customer_id = $1
		ORDER BY request_date DESC`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list services by customer: %w", err)
	}
	defer rows.Close()

	var list []*entity.Service
	for rows.Next() {
		var s entity.Service
		if err := rows.Scan(
			&s.ID, &s.CustomerID, &s.AgentID, &s.ServiceType, &s.Notes,
			&s.ScheduledDate, &s.RequestDate, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListByAgent reservas asignadas a un agente, con datos del cliente.
func (r *ServiceRepo) ListByAgent(agentID string) ([]repository.ServiceWithDetails, error) {
	query := `
		SELECT s.id, s.customer_id, COALESCE(s.agent_id::text, ''), s.service_type, s.notes,
			s.scheduled_date, s.request_date, s.status, s.created_at, s.updated_at,
			c.business_name, c.address, COALESCE(a.name, '')
		FROM services s
		JOIN customers c ON c.id = s.customer_id
		LEFT JOIN agents a ON a.id = s.agent_id
		WHERE s.agent_id = $1
		ORDER BY s.scheduled_date DESC NULLS LAST`
	rows, err := r.q.Query(context.Background(), query, agentID)
	if err != nil {
		return nil, fmt.Errorf("list services by agent: %w", err)
	}
	defer rows.Close()
	return r.scanDetails(rows)
}

// UpdateAssignment fija agente y estado en una sola escritura.
func (r *ServiceRepo) UpdateAssignment(id, agentID, status string) error {
	query := `UPDATE services SET agent_id = $2, status = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, agentID, status, time.Now())
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update service assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado de la reserva.
func (r *ServiceRepo) UpdateStatus(id, status string) error {
	query := `UPDATE services SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update service status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ServiceRepo) scanDetails(rows pgx.Rows) ([]repository.ServiceWithDetails, error) {
	var list []repository.ServiceWithDetails
	for rows.Next() {
		var d repository.ServiceWithDetails
		if err := rows.Scan(
			&d.ID, &d.CustomerID, &d.AgentID, &d.ServiceType, &d.Notes,
			&d.ScheduledDate, &d.RequestDate, &d.Status, &d.CreatedAt, &d.UpdatedAt,
			&d.CustomerName, &d.CustomerAddress, &d.AgentName,
		); err != nil {
			return nil, fmt.Errorf("scan service details: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
