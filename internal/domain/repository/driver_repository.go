package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// DriverRepository puerto de persistencia de choferes.
type DriverRepository interface {
	Create(d *entity.Driver) (int64, error)
	GetByID(id int64) (*entity.Driver, error)
	List() ([]*entity.Driver, error)
	Update(d *entity.Driver) error
	Delete(id int64) error
}
