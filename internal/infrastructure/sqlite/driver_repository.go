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

var _ repository.DriverRepository = (*DriverRepo)(nil)

// DriverRepo implementación del puerto DriverRepository sobre SQLite.
type DriverRepo struct {
	q Querier
}

// NewDriverRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewDriverRepository(q Querier) *DriverRepo {
	return &DriverRepo{q: q}
}

// Create persiste un chofer. Nombre repetido devuelve ErrDuplicate.
func (r *DriverRepo) Create(d *entity.Driver) (int64, error) {
	res, err := r.q.ExecContext(context.Background(),
		`INSERT INTO choferes (nombre, dni, telefono, estado) VALUES (?, ?, ?, ?)`,
		d.Name, d.DNI, d.Phone, d.Status,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert chofer: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un chofer por id.
func (r *DriverRepo) GetByID(id int64) (*entity.Driver, error) {
	var d entity.Driver
	err := r.q.QueryRowContext(context.Background(),
		`SELECT id, nombre, dni, telefono, estado FROM choferes WHERE id = ?`, id,
	).Scan(&d.ID, &d.Name, &d.DNI, &d.Phone, &d.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get chofer: %w", err)
	}
	return &d, nil
}

// List devuelve el directorio ordenado por nombre.
func (r *DriverRepo) List() ([]*entity.Driver, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT id, nombre, dni, telefono, estado FROM choferes ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list choferes: %w", err)
	}
	defer rows.Close()

	var out []*entity.Driver
	for rows.Next() {
		var d entity.Driver
		if err := rows.Scan(&d.ID, &d.Name, &d.DNI, &d.Phone, &d.Status); err != nil {
			return nil, fmt.Errorf("scan chofer: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// Update actualiza un chofer.
func (r *DriverRepo) Update(d *entity.Driver) error {
	res, err := r.q.ExecContext(context.Background(),
		`UPDATE choferes SET nombre = ?, dni = ?, telefono = ?, estado = ? WHERE id = ?`,
		d.Name, d.DNI, d.Phone, d.Status, d.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update chofer: %w", err)
	}
	return requireRow(res)
}

// Delete elimina un chofer.
func (r *DriverRepo) Delete(id int64) error {
	res, err := r.q.ExecContext(context.Background(), `DELETE FROM choferes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete chofer: %w", err)
	}
	return requireRow(res)
}
