package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

var _ repository.FuelRepository = (*FuelRepo)(nil)

// FuelRepo implementación del puerto FuelRepository sobre SQLite.
type FuelRepo struct {
	q Querier
}

// NewFuelRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewFuelRepository(q Querier) *FuelRepo {
	return &FuelRepo{q: q}
}

const fuelColumns = `id, fecha, vehiculo_id, chofer_id, litros, costo, km`

// Create persiste una carga.
func (r *FuelRepo) Create(f *entity.FuelLog) (int64, error) {
	var driverID sql.NullInt64
	if f.DriverID != nil {
		driverID = sql.NullInt64{Int64: *f.DriverID, Valid: true}
	}
	res, err := r.q.ExecContext(context.Background(), `
		INSERT INTO combustible (fecha, vehiculo_id, chofer_id, litros, costo, km)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.Date, f.VehicleID, driverID, f.Liters, f.Cost, f.OdometerKM,
	)
	if err != nil {
		return 0, fmt.Errorf("insert carga: %w", err)
	}
	return res.LastInsertId()
}

// List devuelve las últimas cargas.
func (r *FuelRepo) List(limit int) ([]*entity.FuelLog, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT `+fuelColumns+` FROM combustible ORDER BY fecha DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list combustible: %w", err)
	}
	defer rows.Close()
	return collectFuelLogs(rows)
}

// ListByVehicle devuelve las últimas cargas de un móvil.
func (r *FuelRepo) ListByVehicle(vehicleID int64, limit int) ([]*entity.FuelLog, error) {
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT `+fuelColumns+` FROM combustible
		WHERE vehiculo_id = ? ORDER BY fecha DESC, id DESC LIMIT ?`,
		vehicleID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list combustible por movil: %w", err)
	}
	defer rows.Close()
	return collectFuelLogs(rows)
}

// ConsumptionRanking agrega litros por chofer, de mayor a menor consumo.
// Cargas sin chofer asignado quedan fuera del ranking.
func (r *FuelRepo) ConsumptionRanking() ([]*repository.DriverConsumption, error) {
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT ch.nombre, COUNT(*), COALESCE(SUM(CAST(c.litros AS REAL)), 0)
		FROM combustible c
		JOIN choferes ch ON ch.id = c.chofer_id
		GROUP BY ch.id, ch.nombre
		ORDER BY SUM(CAST(c.litros AS REAL)) DESC`)
	if err != nil {
		return nil, fmt.Errorf("ranking consumo: %w", err)
	}
	defer rows.Close()

	var out []*repository.DriverConsumption
	for rows.Next() {
		var row repository.DriverConsumption
		if err := rows.Scan(&row.DriverName, &row.Loads, &row.TotalLiters); err != nil {
			return nil, fmt.Errorf("scan ranking: %w", err)
		}
		out = append(out, &row)
	}
	return out, rows.Err()
}

func collectFuelLogs(rows *sql.Rows) ([]*entity.FuelLog, error) {
	var out []*entity.FuelLog
	for rows.Next() {
		var f entity.FuelLog
		var driverID sql.NullInt64
		if err := rows.Scan(&f.ID, &f.Date, &f.VehicleID, &driverID, &f.Liters, &f.Cost, &f.OdometerKM); err != nil {
			return nil, fmt.Errorf("scan carga: %w", err)
		}
		if driverID.Valid {
			id := driverID.Int64
			f.DriverID = &id
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
