package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sawaid25/aixosfire-api/internal/application/booking"
	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
)

var _ booking.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta una función contra repositorios ligados a una misma
// transacción. Si fn devuelve error la transacción se revierte completa.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el ejecutor transaccional.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run abre una transacción, construye los repositorios sobre ella y la
// confirma solo si fn termina sin error.
func (r *TxRunner) Run(ctx context.Context, fn func(services repository.ServiceRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("error iniciando transacción: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewServiceRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("error confirmando transacción: %w", err)
	}
	return nil
}
