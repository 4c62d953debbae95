package sqlite

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas para el tablero y los informes. Los
// costos se guardan como texto decimal; se agregan castéandolos a REAL, que
// para montos de taller no pierde precisión apreciable.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// CountOrdersByStatus cuenta las OTs por estado.
func (r *AnalyticsRepo) CountOrdersByStatus() (map[string]int64, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT estado, COUNT(*) FROM mantenimientos GROUP BY estado`)
	if err != nil {
		return nil, fmt.Errorf("contar ots por estado: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan conteo: %w", err)
		}
		out[status] = count
	}
	return out, rows.Err()
}

// CostByCategory agrega el gasto de OTs cerradas por rubro, de mayor a menor.
func (r *AnalyticsRepo) CostByCategory() ([]*repository.CategoryCost, error) {
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT rubro, COUNT(*), COALESCE(SUM(CAST(costo_total AS REAL)), 0)
		FROM mantenimientos
		WHERE estado = ?
		GROUP BY rubro
		ORDER BY SUM(CAST(costo_total AS REAL)) DESC`,
		entity.OrderClosed,
	)
	if err != nil {
		return nil, fmt.Errorf("gasto por rubro: %w", err)
	}
	defer rows.Close()

	var out []*repository.CategoryCost
	for rows.Next() {
		var c repository.CategoryCost
		if err := rows.Scan(&c.Category, &c.Orders, &c.Total); err != nil {
			return nil, fmt.Errorf("scan gasto por rubro: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// CostByVehicle agrega el gasto de OTs cerradas por móvil, de mayor a menor.
func (r *AnalyticsRepo) CostByVehicle() ([]*repository.VehicleCost, error) {
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT f.id, f.nombre, COUNT(*), COALESCE(SUM(CAST(m.costo_total AS REAL)), 0)
		FROM mantenimientos m
		JOIN flota f ON f.id = m.vehiculo_id
		WHERE m.estado = ?
		GROUP BY f.id, f.nombre
		ORDER BY SUM(CAST(m.costo_total AS REAL)) DESC`,
		entity.OrderClosed,
	)
	if err != nil {
		return nil, fmt.Errorf("gasto por movil: %w", err)
	}
	defer rows.Close()

	var out []*repository.VehicleCost
	for rows.Next() {
		var v repository.VehicleCost
		if err := rows.Scan(&v.VehicleID, &v.VehicleName, &v.Orders, &v.Total); err != nil {
			return nil, fmt.Errorf("scan gasto por movil: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

// FuelByVehicle agrega litros, gasto y rango de odómetro por móvil.
func (r *AnalyticsRepo) FuelByVehicle() ([]*repository.VehicleFuel, error) {
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT f.id, f.nombre,
			COALESCE(SUM(CAST(c.litros AS REAL)), 0),
			COALESCE(SUM(CAST(c.costo AS REAL)), 0),
			COALESCE(MIN(c.km), 0),
			COALESCE(MAX(c.km), 0)
		FROM combustible c
		JOIN flota f ON f.id = c.vehiculo_id
		GROUP BY f.id, f.nombre
		ORDER BY f.nombre`)
	if err != nil {
		return nil, fmt.Errorf("combustible por movil: %w", err)
	}
	defer rows.Close()

	var out []*repository.VehicleFuel
	for rows.Next() {
		var v repository.VehicleFuel
		if err := rows.Scan(&v.VehicleID, &v.VehicleName, &v.Liters, &v.Cost, &v.MinKM, &v.MaxKM); err != nil {
			return nil, fmt.Errorf("scan combustible por movil: %w", err)
		}
		out = append(out, &v)
	}
	return out, rows.Err()
}

// MaintenanceCostTotal suma el gasto de todas las OTs cerradas.
func (r *AnalyticsRepo) MaintenanceCostTotal() (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRowContext(context.Background(),
		`SELECT COALESCE(SUM(CAST(costo_total AS REAL)), 0) FROM mantenimientos WHERE estado = ?`,
		entity.OrderClosed,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("gasto total mantenimiento: %w", err)
	}
	return total, nil
}
