package inventory

import (
	"context"

	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el saldo de stock y su asiento
// de kardex se escriban juntos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stock repository.StockRepository,
		movements repository.MovementRepository,
	) error) error
}
