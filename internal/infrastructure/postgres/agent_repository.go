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

var _ repository.AgentRepository = (*AgentRepo)(nil)

const agentColumns = `id, email, password_hash, name, phone, territory, status, lat, lng, created_at, updated_at`

// AgentRepo implementación de AgentRepository (usable con pool o tx).
type AgentRepo struct {
	q Querier
}

// NewAgentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAgentRepository(q Querier) *AgentRepo {
	return &AgentRepo{q: q}
}

// Create persiste un nuevo agente.
func (r *AgentRepo) Create(agent *entity.Agent) error {
	query := `
		INSERT INTO agents (id, email, password_hash, name, phone, territory, status, lat, lng, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		agent.ID, agent.Email, agent.PasswordHash, agent.Name, agent.Phone, agent.Territory,
		agent.Status, agent.Lat, agent.Lng, agent.CreatedAt, agent.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert agent: %w", err)
	}
	return nil
}

// GetByID obtiene un agente por ID.
func (r *AgentRepo) GetByID(id string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetByEmail obtiene un agente por email (login).
func (r *AgentRepo) GetByEmail(email string) (*entity.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE email = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email))
}

// ListByStatus lista agentes por estado de aprobación; status vacío = todos.
func (r *AgentRepo) ListByStatus(status string, limit, offset int) ([]*entity.Agent, error) {
	query := `
		SELECT ` + agentColumns + `
		FROM agents
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list agents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Agent
	for rows.Next() {
		var a entity.Agent
		if err := rows.Scan(
			&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Phone, &a.Territory,
			&a.Status, &a.Lat, &a.Lng, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan agent: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de aprobación del agente.
func (r *AgentRepo) UpdateStatus(id, status string) error {
	query := `UPDATE agents SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, time.Now())
	if err != nil {
		return fmt.Errorf("update agent status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePosition actualiza la última posición conocida del agente.
func (r *AgentRepo) UpdatePosition(id string, lat, lng float64) error {
	query := `UPDATE agents SET lat = $2, lng = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, lat, lng, time.Now())
	if err != nil {
		return fmt.Errorf("update agent position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AgentRepo) scanOne(row pgx.Row) (*entity.Agent, error) {
	var a entity.Agent
	err := row.Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.Phone, &a.Territory,
		&a.Status, &a.Lat, &a.Lng, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get agent: %w", err)
	}
	return &a, nil
}
