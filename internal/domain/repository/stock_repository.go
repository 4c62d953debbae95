package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// StockRepository puerto de persistencia del pañol.
type StockRepository interface {
	Create(item *entity.StockItem) (int64, error)
	GetByID(id int64) (*entity.StockItem, error)
	// GetForUpdate lee el artículo dentro de la transacción en curso para
	// decidir sobre la cantidad vigente antes de moverla.
	GetForUpdate(id int64) (*entity.StockItem, error)
	List() ([]*entity.StockItem, error)
	Search(query string) ([]*entity.StockItem, error)
	Update(item *entity.StockItem) error
	// AdjustQuantity suma delta (puede ser negativo) a la cantidad.
	AdjustQuantity(id int64, delta int64) error
	Delete(id int64) error
}
