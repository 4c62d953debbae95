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

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository sobre SQLite.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, codigo, nombre, cantidad, minimo, precio_unitario, rubro, proveedor, recibido_en`

// Create persiste un artículo nuevo.
func (r *StockRepo) Create(item *entity.StockItem) (int64, error) {
	res, err := r.q.ExecContext(context.Background(), `
		INSERT INTO stock (codigo, nombre, cantidad, minimo, precio_unitario, rubro, proveedor)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.Code, item.Name, item.Quantity, item.Minimum, item.UnitPrice, item.Rubro, item.Supplier,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrDuplicate
		}
		return 0, fmt.Errorf("insert stock: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un artículo por id.
func (r *StockRepo) GetByID(id int64) (*entity.StockItem, error) {
	row := r.q.QueryRowContext(context.Background(),
		`SELECT `+stockColumns+` FROM stock WHERE id = ?`, id)
	return scanStockItem(row)
}

// GetForUpdate lee el artículo dentro de la transacción en curso. SQLite
// serializa escrituras a nivel de base, así que no hay SELECT FOR UPDATE:
// leer dentro de la tx alcanza para decidir sobre el saldo vigente.
func (r *StockRepo) GetForUpdate(id int64) (*entity.StockItem, error) {
	return r.GetByID(id)
}

// List devuelve el pañol ordenado por nombre.
func (r *StockRepo) List() ([]*entity.StockItem, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT `+stockColumns+` FROM stock ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

// Search busca por nombre, código o rubro.
func (r *StockRepo) Search(query string) ([]*entity.StockItem, error) {
	like := "%" + query + "%"
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT `+stockColumns+` FROM stock
		WHERE nombre LIKE ? OR codigo LIKE ? OR rubro LIKE ?
		ORDER BY nombre`,
		like, like, like,
	)
	if err != nil {
		return nil, fmt.Errorf("search stock: %w", err)
	}
	defer rows.Close()
	return collectStockItems(rows)
}

// Update actualiza los datos del artículo, saldo incluido (los casos de uso
// son los que deciden cuándo mover la cantidad).
func (r *StockRepo) Update(item *entity.StockItem) error {
	res, err := r.q.ExecContext(context.Background(), `
		UPDATE stock SET codigo = ?, nombre = ?, cantidad = ?, minimo = ?, precio_unitario = ?, rubro = ?, proveedor = ?
		WHERE id = ?`,
		item.Code, item.Name, item.Quantity, item.Minimum, item.UnitPrice, item.Rubro, item.Supplier, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	return requireRow(res)
}

// AdjustQuantity suma delta (puede ser negativo) a la cantidad. El CHECK de
// no quedar negativo lo hacen los casos de uso antes de llamar.
func (r *StockRepo) AdjustQuantity(id int64, delta int64) error {
	res, err := r.q.ExecContext(context.Background(),
		`UPDATE stock SET cantidad = cantidad + ? WHERE id = ?`, delta, id)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	return requireRow(res)
}

// Delete elimina un artículo. Sus asientos de kardex quedan.
func (r *StockRepo) Delete(id int64) error {
	res, err := r.q.ExecContext(context.Background(), `DELETE FROM stock WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	return requireRow(res)
}

func scanStockItem(row rowScanner) (*entity.StockItem, error) {
	var it entity.StockItem
	var received sql.NullTime
	err := row.Scan(&it.ID, &it.Code, &it.Name, &it.Quantity, &it.Minimum, &it.UnitPrice, &it.Rubro, &it.Supplier, &received)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan stock: %w", err)
	}
	if received.Valid {
		t := received.Time
		it.ReceivedAt = &t
	}
	return &it, nil
}

func collectStockItems(rows *sql.Rows) ([]*entity.StockItem, error) {
	var out []*entity.StockItem
	for rows.Next() {
		it, err := scanStockItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
