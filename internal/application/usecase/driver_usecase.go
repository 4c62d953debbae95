package usecase

import (
	"context"
	"strings"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// DriverUseCase administra el directorio de choferes.
type DriverUseCase struct {
	drivers repository.DriverRepository
}

// NewDriverUseCase construye el caso de uso.
func NewDriverUseCase(drivers repository.DriverRepository) *DriverUseCase {
	return &DriverUseCase{drivers: drivers}
}

// Create da de alta un chofer activo. El nombre es único: repetirlo devuelve
// ErrDuplicate.
func (uc *DriverUseCase) Create(ctx context.Context, in dto.CreateDriverRequest) (*entity.Driver, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	d := &entity.Driver{
		Name:   name,
		DNI:    strings.TrimSpace(in.DNI),
		Phone:  strings.TrimSpace(in.Phone),
		Status: entity.DriverActive,
	}
	id, err := uc.drivers.Create(d)
	if err != nil {
		return nil, err
	}
	d.ID = id
	return d, nil
}

// Get devuelve un chofer por id.
func (uc *DriverUseCase) Get(ctx context.Context, id int64) (*entity.Driver, error) {
	return uc.drivers.GetByID(id)
}

// List devuelve el directorio completo.
func (uc *DriverUseCase) List(ctx context.Context) ([]*entity.Driver, error) {
	return uc.drivers.List()
}

// Update modifica un chofer, incluido su estado Activo/Inactivo.
func (uc *DriverUseCase) Update(ctx context.Context, id int64, in dto.CreateDriverRequest, status string) (*entity.Driver, error) {
	d, err := uc.drivers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		d.Name = name
	}
	d.DNI = strings.TrimSpace(in.DNI)
	d.Phone = strings.TrimSpace(in.Phone)
	if status != "" {
		if status != entity.DriverActive && status != entity.DriverInactive {
			return nil, domain.ErrInvalidInput
		}
		d.Status = status
	}
	if err := uc.drivers.Update(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Delete elimina un chofer en dos pasos.
func (uc *DriverUseCase) Delete(ctx context.Context, id int64, confirm bool) error {
	if _, err := uc.drivers.GetByID(id); err != nil {
		return err
	}
	if !confirm {
		return domain.ErrConfirmationNeeded
	}
	return uc.drivers.Delete(id)
}
