package workorder

import (
	"github.com/transportechiro/flota-api/internal/application/catalog"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
	"github.com/transportechiro/flota-api/pkg/logger"
)

// Capabilities parametriza el único camino de creación de OTs según quién la
// crea. No hay dos endpoints distintos para admin y operario: la diferencia
// es solo qué puede hacer cada uno dentro del mismo flujo.
type Capabilities struct {
	// CanSelfApprove aprueba las solicitudes de repuestos de la propia OT en
	// el mismo acto (descuenta stock y asienta kardex en la misma tx).
	CanSelfApprove bool
	// CanUseAI habilita la pre-carga asistida.
	CanUseAI bool
}

// CapabilitiesForRole deriva las capacidades del rol del usuario.
func CapabilitiesForRole(role string) Capabilities {
	return Capabilities{
		CanSelfApprove: role == entity.RoleAdmin,
		CanUseAI:       true,
	}
}

// Actor identifica a quien ejecuta la operación.
type Actor struct {
	Username string
	Caps     Capabilities
}

// UseCase orquesta el ciclo de vida de las órdenes de trabajo: creación con
// resolución de tareas contra el catálogo, solicitudes de repuestos diferidas,
// cierre con costo final y baja confirmada.
type UseCase struct {
	txRunner  TxRunner
	orders    repository.WorkOrderRepository
	requests  repository.PartsRequestRepository
	stock     repository.StockRepository
	vehicles  repository.VehicleRepository
	drivers   repository.DriverRepository
	suppliers repository.SupplierRepository
	movements repository.MovementRepository
	resolver  *catalog.Resolver
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	orders repository.WorkOrderRepository,
	requests repository.PartsRequestRepository,
	stock repository.StockRepository,
	vehicles repository.VehicleRepository,
	drivers repository.DriverRepository,
	suppliers repository.SupplierRepository,
	movements repository.MovementRepository,
	resolver *catalog.Resolver,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		orders:    orders,
		requests:  requests,
		stock:     stock,
		vehicles:  vehicles,
		drivers:   drivers,
		suppliers: suppliers,
		movements: movements,
		resolver:  resolver,
		log:       log,
	}
}
