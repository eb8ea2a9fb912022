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

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementación de AdminRepository. Los admins se crean por seed,
// no hay registro público.
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

// Create persiste un admin.
func (r *AdminRepo) Create(admin *entity.Admin) error {
	query := `
		INSERT INTO admins (id, email, password_hash, name, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		admin.ID, admin.Email, admin.PasswordHash, admin.Name, admin.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// GetByEmail obtiene un admin por email (login).
func (r *AdminRepo) GetByEmail(email string) (*entity.Admin, error) {
	query := `SELECT id, email, password_hash, name, created_at FROM admins WHERE email = $1`
	var a entity.Admin
	err := r.q.QueryRow(context.Background(), query, email).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get admin: %w", err)
	}
	return &a, nil
}
