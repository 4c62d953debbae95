package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

var _ repository.WorkOrderRepository = (*WorkOrderRepo)(nil)

// WorkOrderRepo implementación del puerto WorkOrderRepository sobre SQLite.
type WorkOrderRepo struct {
	q Querier
}

// NewWorkOrderRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewWorkOrderRepository(q Querier) *WorkOrderRepo {
	return &WorkOrderRepo{q: q}
}

const orderColumns = `id, fecha, vehiculo_id, chofer_id, descripcion, checklist, rubro, estado,
	costo_total, costo_terceros, responsable, taller_externo, repuestos_snapshot,
	observaciones, fecha_cierre, creado_por, creado_en`

// Create persiste una OT nueva.
func (r *WorkOrderRepo) Create(o *entity.WorkOrder) (int64, error) {
	checklist, err := json.Marshal(o.Checklist)
	if err != nil {
		return 0, fmt.Errorf("serializar checklist: %w", err)
	}
	var driverID sql.NullInt64
	if o.DriverID != nil {
		driverID = sql.NullInt64{Int64: *o.DriverID, Valid: true}
	}
	var snapshot sql.NullString
	if len(o.PartsSnapshot) > 0 {
		snapshot = sql.NullString{String: string(o.PartsSnapshot), Valid: true}
	}
	res, err := r.q.ExecContext(context.Background(), `
		INSERT INTO mantenimientos (fecha, vehiculo_id, chofer_id, descripcion, checklist, rubro, estado,
			costo_total, costo_terceros, responsable, taller_externo, repuestos_snapshot,
			observaciones, creado_por, creado_en)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)`,
		o.Date, o.VehicleID, driverID, o.Description, string(checklist), o.Category, o.Status,
		o.TotalCost, o.ThirdPartyCost, o.Responsible, o.ExternalWorkshop, snapshot,
		o.Observations, o.CreatedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("insert ot: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene una OT por id.
func (r *WorkOrderRepo) GetByID(id int64) (*entity.WorkOrder, error) {
	row := r.q.QueryRowContext(context.Background(),
		`SELECT `+orderColumns+` FROM mantenimientos WHERE id = ?`, id)
	return scanOrder(row)
}

// List devuelve el historial filtrado, más recientes primero.
func (r *WorkOrderRepo) List(f repository.WorkOrderFilter) ([]*entity.WorkOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM mantenimientos WHERE 1=1`
	var args []any
	if f.Status != "" {
		query += ` AND estado = ?`
		args = append(args, f.Status)
	}
	if f.Text != "" {
		query += ` AND (descripcion LIKE ? OR observaciones LIKE ? OR taller_externo LIKE ?)`
		like := "%" + f.Text + "%"
		args = append(args, like, like, like)
	}
	query += ` ORDER BY fecha DESC, id DESC`
	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := r.q.QueryContext(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ots: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListByDate devuelve las OTs de una fecha (YYYY-MM-DD).
func (r *WorkOrderRepo) ListByDate(date string, limit int) ([]*entity.WorkOrder, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT `+orderColumns+` FROM mantenimientos
		WHERE date(fecha) = ? ORDER BY id DESC LIMIT ?`,
		date, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list ots por fecha: %w", err)
	}
	defer rows.Close()
	return collectOrders(rows)
}

// Update actualiza la OT completa.
func (r *WorkOrderRepo) Update(o *entity.WorkOrder) error {
	checklist, err := json.Marshal(o.Checklist)
	if err != nil {
		return fmt.Errorf("serializar checklist: %w", err)
	}
	var closedAt sql.NullTime
	if o.ClosedAt != nil {
		closedAt = sql.NullTime{Time: *o.ClosedAt, Valid: true}
	}
	res, err := r.q.ExecContext(context.Background(), `
		UPDATE mantenimientos SET descripcion = ?, checklist = ?, rubro = ?, estado = ?,
			costo_total = ?, costo_terceros = ?, responsable = ?, taller_externo = ?,
			observaciones = ?, fecha_cierre = ?
		WHERE id = ?`,
		o.Description, string(checklist), o.Category, o.Status,
		o.TotalCost, o.ThirdPartyCost, o.Responsible, o.ExternalWorkshop,
		o.Observations, closedAt, o.ID,
	)
	if err != nil {
		return fmt.Errorf("update ot: %w", err)
	}
	return requireRow(res)
}

// Delete elimina una OT; tareas y solicitudes caen por cascada, los asientos
// de kardex quedan con la referencia en NULL.
func (r *WorkOrderRepo) Delete(id int64) error {
	res, err := r.q.ExecContext(context.Background(), `DELETE FROM mantenimientos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete ot: %w", err)
	}
	return requireRow(res)
}

// AddTask vincula una tarea canónica a la OT.
func (r *WorkOrderRepo) AddTask(t *entity.OrderTask) error {
	_, err := r.q.ExecContext(context.Background(),
		`INSERT INTO ot_tareas (ot_id, tarea_id, texto_original) VALUES (?, ?, ?)`,
		t.WorkOrderID, t.TaskID, t.RawText,
	)
	if err != nil {
		return fmt.Errorf("insert ot_tarea: %w", err)
	}
	return nil
}

// ListTasks devuelve las tareas de una OT en orden de carga.
func (r *WorkOrderRepo) ListTasks(orderID int64) ([]*entity.OrderTask, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT id, ot_id, tarea_id, texto_original FROM ot_tareas WHERE ot_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list ot_tareas: %w", err)
	}
	defer rows.Close()

	var out []*entity.OrderTask
	for rows.Next() {
		var t entity.OrderTask
		if err := rows.Scan(&t.ID, &t.WorkOrderID, &t.TaskID, &t.RawText); err != nil {
			return nil, fmt.Errorf("scan ot_tarea: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func scanOrder(row rowScanner) (*entity.WorkOrder, error) {
	var o entity.WorkOrder
	var driverID sql.NullInt64
	var checklist string
	var snapshot sql.NullString
	var closedAt sql.NullTime
	err := row.Scan(&o.ID, &o.Date, &o.VehicleID, &driverID, &o.Description, &checklist, &o.Category, &o.Status,
		&o.TotalCost, &o.ThirdPartyCost, &o.Responsible, &o.ExternalWorkshop, &snapshot,
		&o.Observations, &closedAt, &o.CreatedBy, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan ot: %w", err)
	}
	if driverID.Valid {
		id := driverID.Int64
		o.DriverID = &id
	}
	if err := json.Unmarshal([]byte(checklist), &o.Checklist); err != nil {
		return nil, fmt.Errorf("deserializar checklist de ot %d: %w", o.ID, err)
	}
	if snapshot.Valid {
		o.PartsSnapshot = json.RawMessage(snapshot.String)
	}
	if closedAt.Valid {
		t := closedAt.Time
		o.ClosedAt = &t
	}
	return &o, nil
}

func collectOrders(rows *sql.Rows) ([]*entity.WorkOrder, error) {
	var out []*entity.WorkOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
