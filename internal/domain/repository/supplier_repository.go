package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// SupplierRepository puerto de persistencia de proveedores.
type SupplierRepository interface {
	Create(s *entity.Supplier) (int64, error)
	GetByID(id int64) (*entity.Supplier, error)
	GetByCompany(company string) (*entity.Supplier, error)
	List() ([]*entity.Supplier, error)
	Update(s *entity.Supplier) error
	Delete(id int64) error
}
