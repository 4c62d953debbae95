package usecase

import (
	"context"
	"strings"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// SupplierUseCase administra proveedores y talleres externos.
type SupplierUseCase struct {
	suppliers repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(suppliers repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{suppliers: suppliers}
}

// Create da de alta un proveedor. Si la empresa ya existe devuelve
// ErrDuplicate: el alta ad hoc desde la OT reusa el existente.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	company := strings.TrimSpace(in.Company)
	if company == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.suppliers.GetByCompany(company); err == nil {
		return nil, domain.ErrDuplicate
	} else if err != domain.ErrNotFound {
		return nil, err
	}
	s := &entity.Supplier{
		Company: company,
		Contact: strings.TrimSpace(in.Contact),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		Rubro:   strings.TrimSpace(in.Rubro),
	}
	id, err := uc.suppliers.Create(s)
	if err != nil {
		return nil, err
	}
	s.ID = id
	return s, nil
}

// Get devuelve un proveedor por id.
func (uc *SupplierUseCase) Get(ctx context.Context, id int64) (*entity.Supplier, error) {
	return uc.suppliers.GetByID(id)
}

// List devuelve todos los proveedores.
func (uc *SupplierUseCase) List(ctx context.Context) ([]*entity.Supplier, error) {
	return uc.suppliers.List()
}

// Update modifica un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	s, err := uc.suppliers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company := strings.TrimSpace(in.Company); company != "" {
		s.Company = company
	}
	s.Contact = strings.TrimSpace(in.Contact)
	s.Phone = strings.TrimSpace(in.Phone)
	s.Address = strings.TrimSpace(in.Address)
	s.Rubro = strings.TrimSpace(in.Rubro)
	if err := uc.suppliers.Update(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Delete elimina un proveedor en dos pasos.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64, confirm bool) error {
	if _, err := uc.suppliers.GetByID(id); err != nil {
		return err
	}
	if !confirm {
		return domain.ErrConfirmationNeeded
	}
	return uc.suppliers.Delete(id)
}
