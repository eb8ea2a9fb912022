package booking

import (
	"context"

	"github.com/sawaid25/aixosfire-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// repositorio de servicios atado a esa tx. Garantiza que la reserva y sus
// ítems se escriban juntos o no se escriba nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(services repository.ServiceRepository) error) error
}
