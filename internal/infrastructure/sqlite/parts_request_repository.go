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

var _ repository.PartsRequestRepository = (*PartsRequestRepo)(nil)

// PartsRequestRepo implementación del puerto PartsRequestRepository sobre SQLite.
type PartsRequestRepo struct {
	q Querier
}

// NewPartsRequestRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewPartsRequestRepository(q Querier) *PartsRequestRepo {
	return &PartsRequestRepo{q: q}
}

const requestColumns = `id, ot_id, stock_id, cantidad, estado, solicitado_por, resuelto_por, resuelto_en`

// Create persiste una línea de solicitud.
func (r *PartsRequestRepo) Create(req *entity.PartsRequest) (int64, error) {
	res, err := r.q.ExecContext(context.Background(), `
		INSERT INTO solicitudes_repuestos (ot_id, stock_id, cantidad, estado, solicitado_por)
		VALUES (?, ?, ?, ?, ?)`,
		req.WorkOrderID, req.StockItemID, req.Quantity, req.Status, req.RequestedBy,
	)
	if err != nil {
		return 0, fmt.Errorf("insert solicitud: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene una solicitud por id.
func (r *PartsRequestRepo) GetByID(id int64) (*entity.PartsRequest, error) {
	row := r.q.QueryRowContext(context.Background(),
		`SELECT `+requestColumns+` FROM solicitudes_repuestos WHERE id = ?`, id)
	return scanRequest(row)
}

// ListPending devuelve las solicitudes sin resolver, más viejas primero.
func (r *PartsRequestRepo) ListPending() ([]*entity.PartsRequest, error) {
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT `+requestColumns+` FROM solicitudes_repuestos
		WHERE estado = ? ORDER BY id`,
		entity.RequestPending,
	)
	if err != nil {
		return nil, fmt.Errorf("list solicitudes pendientes: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

// ListByWorkOrder devuelve todas las solicitudes de una OT.
func (r *PartsRequestRepo) ListByWorkOrder(orderID int64) ([]*entity.PartsRequest, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT `+requestColumns+` FROM solicitudes_repuestos WHERE ot_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list solicitudes por ot: %w", err)
	}
	defer rows.Close()
	return collectRequests(rows)
}

// Resolve marca la línea como Aprobada o Rechazada. Solo toca filas
// pendientes: una solicitud ya resuelta devuelve ErrRequestResolved, lo que
// hace imposible aprobar dos veces (y descontar stock dos veces).
func (r *PartsRequestRepo) Resolve(id int64, status, resolvedBy string) error {
	res, err := r.q.ExecContext(context.Background(), `
		UPDATE solicitudes_repuestos SET estado = ?, resuelto_por = ?, resuelto_en = ?
		WHERE id = ? AND estado = ?`,
		status, resolvedBy, time.Now(), id, entity.RequestPending,
	)
	if err != nil {
		return fmt.Errorf("resolver solicitud: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(id); err != nil {
			return err
		}
		return domain.ErrRequestResolved
	}
	return nil
}

func scanRequest(row rowScanner) (*entity.PartsRequest, error) {
	var req entity.PartsRequest
	var resolvedAt sql.NullTime
	err := row.Scan(&req.ID, &req.WorkOrderID, &req.StockItemID, &req.Quantity,
		&req.Status, &req.RequestedBy, &req.ResolvedBy, &resolvedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan solicitud: %w", err)
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		req.ResolvedAt = &t
	}
	return &req, nil
}

func collectRequests(rows *sql.Rows) ([]*entity.PartsRequest, error) {
	var out []*entity.PartsRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}
