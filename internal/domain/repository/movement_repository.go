package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// MovementRepository puerto del kardex. Solo alta y lectura: el ledger es
// inmutable.
type MovementRepository interface {
	Create(m *entity.StockMovement) (int64, error)
	ListRecent(limit int) ([]*entity.StockMovement, error)
	ListByItem(itemID int64, limit int) ([]*entity.StockMovement, error)
	ListByWorkOrder(orderID int64) ([]*entity.StockMovement, error)
}
