package workorder

import (
	"context"

	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que una OT y sus tareas, solicitudes,
// movimientos de stock y el odómetro del móvil se escriban todos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orders repository.WorkOrderRepository,
		requests repository.PartsRequestRepository,
		stock repository.StockRepository,
		movements repository.MovementRepository,
		vehicles repository.VehicleRepository,
	) error) error
}
