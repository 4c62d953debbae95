package fleet

import (
	"context"

	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la carga de combustible y el
// odómetro del móvil se escriban juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		fuel repository.FuelRepository,
		vehicles repository.VehicleRepository,
	) error) error
}
