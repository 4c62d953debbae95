package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del puerto MovementRepository sobre SQLite.
// El kardex es de solo alta y lectura: no hay Update ni Delete.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, transaccion, stock_id, fecha, tipo, cantidad, precio_unitario, usuario, destino, proveedor, remito, ot_id`

// Create asienta un movimiento.
func (r *MovementRepo) Create(m *entity.StockMovement) (int64, error) {
	var orderID sql.NullInt64
	if m.WorkOrderID != nil {
		orderID = sql.NullInt64{Int64: *m.WorkOrderID, Valid: true}
	}
	res, err := r.q.ExecContext(context.Background(), `
		INSERT INTO movimientos_stock (transaccion, stock_id, fecha, tipo, cantidad, precio_unitario, usuario, destino, proveedor, remito, ot_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.TransactionID, m.StockItemID, m.Date, m.Type, m.Quantity, m.UnitPrice,
		m.User, m.Destination, m.Supplier, m.Receipt, orderID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert movimiento: %w", err)
	}
	return res.LastInsertId()
}

// ListRecent devuelve los últimos asientos del kardex completo.
func (r *MovementRepo) ListRecent(limit int) ([]*entity.StockMovement, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT `+movementColumns+` FROM movimientos_stock ORDER BY fecha DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByItem devuelve los últimos asientos de un artículo.
func (r *MovementRepo) ListByItem(itemID int64, limit int) ([]*entity.StockMovement, error) {
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT `+movementColumns+` FROM movimientos_stock
		WHERE stock_id = ? ORDER BY fecha DESC, id DESC LIMIT ?`,
		itemID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por articulo: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// ListByWorkOrder devuelve los asientos generados por una OT.
func (r *MovementRepo) ListByWorkOrder(orderID int64) ([]*entity.StockMovement, error) {
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT `+movementColumns+` FROM movimientos_stock
		WHERE ot_id = ? ORDER BY fecha, id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("list movimientos por ot: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func collectMovements(rows *sql.Rows) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var itemID, orderID sql.NullInt64
		err := rows.Scan(&m.ID, &m.TransactionID, &itemID, &m.Date, &m.Type, &m.Quantity,
			&m.UnitPrice, &m.User, &m.Destination, &m.Supplier, &m.Receipt, &orderID)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		m.StockItemID = itemID.Int64
		if orderID.Valid {
			id := orderID.Int64
			m.WorkOrderID = &id
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
