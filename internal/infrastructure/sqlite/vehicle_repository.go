package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

var _ repository.VehicleRepository = (*VehicleRepo)(nil)

// VehicleRepo implementación del puerto VehicleRepository sobre SQLite
// (usable con conexión o tx).
type VehicleRepo struct {
	q Querier
}

// NewVehicleRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewVehicleRepository(q Querier) *VehicleRepo {
	return &VehicleRepo{q: q}
}

const vehicleColumns = `id, nombre, patente, modelo, km_actual, km_ultimo_service, intervalo_service, km_actualizado`

// Create persiste un móvil nuevo. Nombre repetido devuelve ErrDuplicate.
func (r *VehicleRepo) Create(v *entity.Vehicle) (int64, error) {
	res, err := r.q.ExecContext(context.Background(), `
		INSERT INTO flota (nombre, patente, modelo, km_actual, km_ultimo_service, intervalo_service)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.Name, v.Plate, v.Model, v.CurrentKM, v.LastServiceKM, v.ServiceIntervalKM,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert vehiculo: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un móvil por id.
func (r *VehicleRepo) GetByID(id int64) (*entity.Vehicle, error) {
	row := r.q.QueryRowContext(context.Background(),
		`SELECT `+vehicleColumns+` FROM flota WHERE id = ?`, id)
	return scanVehicle(row)
}

// GetByName obtiene un móvil por nombre exacto.
func (r *VehicleRepo) GetByName(name string) (*entity.Vehicle, error) {
	row := r.q.QueryRowContext(context.Background(),
		`SELECT `+vehicleColumns+` FROM flota WHERE nombre = ?`, name)
	return scanVehicle(row)
}

// List devuelve la flota ordenada por nombre.
func (r *VehicleRepo) List() ([]*entity.Vehicle, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT `+vehicleColumns+` FROM flota ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list flota: %w", err)
	}
	defer rows.Close()

	var out []*entity.Vehicle
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Update actualiza los datos maestros. El kilometraje va por UpdateOdometer.
func (r *VehicleRepo) Update(v *entity.Vehicle) error {
	res, err := r.q.ExecContext(context.Background(), `
		UPDATE flota SET nombre = ?, patente = ?, modelo = ?, km_ultimo_service = ?, intervalo_service = ?
		WHERE id = ?`,
		v.Name, v.Plate, v.Model, v.LastServiceKM, v.ServiceIntervalKM, v.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update vehiculo: %w", err)
	}
	return requireRow(res)
}

// UpdateOdometer actualiza km_actual y estampa la fecha de actualización.
func (r *VehicleRepo) UpdateOdometer(id int64, km int64) error {
	res, err := r.q.ExecContext(context.Background(),
		`UPDATE flota SET km_actual = ?, km_actualizado = ? WHERE id = ?`,
		km, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("update odometro: %w", err)
	}
	return requireRow(res)
}

// Delete elimina un móvil.
func (r *VehicleRepo) Delete(id int64) error {
	res, err := r.q.ExecContext(context.Background(), `DELETE FROM flota WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete vehiculo: %w", err)
	}
	return requireRow(res)
}

// rowScanner cubre *sql.Row y *sql.Rows para compartir los scans.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanVehicle(row rowScanner) (*entity.Vehicle, error) {
	var v entity.Vehicle
	var updated sql.NullTime
	err := row.Scan(&v.ID, &v.Name, &v.Plate, &v.Model, &v.CurrentKM, &v.LastServiceKM, &v.ServiceIntervalKM, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan vehiculo: %w", err)
	}
	if updated.Valid {
		t := updated.Time
		v.KMUpdatedAt = &t
	}
	return &v, nil
}

// requireRow convierte "cero filas afectadas" en ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
