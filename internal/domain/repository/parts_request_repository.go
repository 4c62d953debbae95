package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// PartsRequestRepository puerto de solicitudes de repuestos de OTs.
type PartsRequestRepository interface {
	Create(r *entity.PartsRequest) (int64, error)
	GetByID(id int64) (*entity.PartsRequest, error)
	ListPending() ([]*entity.PartsRequest, error)
	ListByWorkOrder(orderID int64) ([]*entity.PartsRequest, error)
	// Resolve marca la línea como Aprobada o Rechazada.
	Resolve(id int64, status, resolvedBy string) error
}
