package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// VehicleRepository puerto de persistencia de la flota.
type VehicleRepository interface {
	Create(v *entity.Vehicle) (int64, error)
	GetByID(id int64) (*entity.Vehicle, error)
	GetByName(name string) (*entity.Vehicle, error)
	List() ([]*entity.Vehicle, error)
	Update(v *entity.Vehicle) error
	// UpdateOdometer actualiza km_actual y la fecha de actualización.
	UpdateOdometer(id int64, km int64) error
	Delete(id int64) error
}
