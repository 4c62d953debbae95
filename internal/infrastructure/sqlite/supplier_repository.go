package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación del puerto SupplierRepository sobre SQLite.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, empresa, contacto, telefono, direccion, rubro`

// Create persiste un proveedor. Empresa repetida devuelve ErrDuplicate.
func (r *SupplierRepo) Create(s *entity.Supplier) (int64, error) {
	res, err := r.q.ExecContext(context.Background(), `
		INSERT INTO proveedores (empresa, contacto, telefono, direccion, rubro)
		VALUES (?, ?, ?, ?, ?)`,
		s.Company, s.Contact, s.Phone, s.Address, s.Rubro,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert proveedor: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un proveedor por id.
func (r *SupplierRepo) GetByID(id int64) (*entity.Supplier, error) {
	row := r.q.QueryRowContext(context.Background(),
		`SELECT `+supplierColumns+` FROM proveedores WHERE id = ?`, id)
	return scanSupplier(row)
}

// GetByCompany obtiene un proveedor por empresa, sin distinguir mayúsculas
// (el alta ad hoc desde la OT no debe duplicar "Gomería Sur" y "gomería sur").
func (r *SupplierRepo) GetByCompany(company string) (*entity.Supplier, error) {
	row := r.q.QueryRowContext(context.Background(),
		`SELECT `+supplierColumns+` FROM proveedores WHERE empresa = ? COLLATE NOCASE`, company)
	return scanSupplier(row)
}

// List devuelve todos los proveedores ordenados por empresa.
func (r *SupplierRepo) List() ([]*entity.Supplier, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT `+supplierColumns+` FROM proveedores ORDER BY empresa`)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var out []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update actualiza un proveedor.
func (r *SupplierRepo) Update(s *entity.Supplier) error {
	res, err := r.q.ExecContext(context.Background(), `
		UPDATE proveedores SET empresa = ?, contacto = ?, telefono = ?, direccion = ?, rubro = ?
		WHERE id = ?`,
		s.Company, s.Contact, s.Phone, s.Address, s.Rubro, s.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update proveedor: %w", err)
	}
	return requireRow(res)
}

// Delete elimina un proveedor.
func (r *SupplierRepo) Delete(id int64) error {
	res, err := r.q.ExecContext(context.Background(), `DELETE FROM proveedores WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	return requireRow(res)
}

func scanSupplier(row rowScanner) (*entity.Supplier, error) {
	var s entity.Supplier
	err := row.Scan(&s.ID, &s.Company, &s.Contact, &s.Phone, &s.Address, &s.Rubro)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan proveedor: %w", err)
	}
	return &s, nil
}
