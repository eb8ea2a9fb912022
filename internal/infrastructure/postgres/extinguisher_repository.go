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

var _ repository.ExtinguisherRepository = (*ExtinguisherRepo)(nil)

const extinguisherColumns = `id, customer_id, visit_id, type, capacity, quantity, expiry_date,
	condition, status, brand, seller, partner, refill_status, price, created_at`

// ExtinguisherRepo implementación de ExtinguisherRepository (usable con pool o tx).
type ExtinguisherRepo struct {
	q Querier
}

// NewExtinguisherRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExtinguisherRepository(q Querier) *ExtinguisherRepo {
	return &ExtinguisherRepo{q: q}
}

// CreateBatch inserta las líneas de inventario de una visita en un solo batch.
func (r *ExtinguisherRepo) CreateBatch(items []*entity.Extinguisher) error {
	if len(items) == 0 {
		return nil
	}
	query := `
		INSERT INTO extinguishers (id, customer_id, visit_id, type, capacity, quantity,
			expiry_date, condition, status, brand, seller, partner, refill_status, price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	batch := &pgx.Batch{}
	for _, e := range items {
		batch.Queue(query,
			e.ID, e.CustomerID, e.VisitID, e.Type, e.Capacity, e.Quantity,
			e.ExpiryDate, e.Condition, e.Status, e.Brand, e.Seller, e.Partner,
			e.RefillStatus, e.Price, e.CreatedAt,
		)
	}
	results := r.q.SendBatch(context.Background(), batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("insert extinguisher: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una unidad por ID.
func (r *ExtinguisherRepo) GetByID(id string) (*entity.Extinguisher, error) {
	query := `SELECT ` + extinguisherColumns + ` FROM extinguishers WHERE id = $1`
	var e entity.Extinguisher
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.CustomerID, &e.VisitID, &e.Type, &e.Capacity, &e.Quantity, &e.ExpiryDate,
		&e.Condition, &e.Status, &e.Brand, &e.Seller, &e.Partner, &e.RefillStatus,
		&e.Price, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get extinguisher: %w", err)
	}
	return &e, nil
}

// ListByCustomer inventario de un cliente, más reciente primero.
func (r *ExtinguisherRepo) ListByCustomer(customerID string) ([]*entity.Extinguisher, error) {
	query := `SELECT ` + extinguisherColumns + ` FROM extinguishers WHERE customer_id = $1 ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list extinguishers by customer: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListByVisit unidades registradas en una visita.
func (r *ExtinguisherRepo) ListByVisit(visitID string) ([]*entity.Extinguisher, error) {
	query := `SELECT ` + extinguisherColumns + ` FROM extinguishers WHERE visit_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, visitID)
	if err != nil {
		return nil, fmt.Errorf("list extinguishers by visit: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *ExtinguisherRepo) scanAll(rows pgx.Rows) ([]*entity.Extinguisher, error) {
	var list []*entity.Extinguisher
	for rows.Next() {
		var e entity.Extinguisher
		if err := rows.Scan(
			&e.ID, &e.CustomerID, &e.VisitID, &e.Type, &e.Capacity, &e.Quantity, &e.ExpiryDate,
			&e.Condition, &e.Status, &e.Brand, &e.Seller, &e.Partner, &e.RefillStatus,
			&e.Price, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan extinguisher: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
