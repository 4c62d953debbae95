package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// TireRepository puerto de persistencia de lotes de cubiertas.
type TireRepository interface {
	Create(t *entity.TireLot) (int64, error)
	GetByID(id int64) (*entity.TireLot, error)
	List() ([]*entity.TireLot, error)
	Update(t *entity.TireLot) error
	Delete(id int64) error
	TotalUnits() (int64, error)
}
