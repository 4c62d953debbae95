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

var _ repository.TireRepository = (*TireRepo)(nil)

// TireRepo implementación del puerto TireRepository sobre SQLite.
type TireRepo struct {
	q Querier
}

// NewTireRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewTireRepository(q Querier) *TireRepo {
	return &TireRepo{q: q}
}

const tireColumns = `id, marca, modelo, medida, dot, condicion, cantidad, ubicacion`

// Create persiste un lote.
func (r *TireRepo) Create(t *entity.TireLot) (int64, error) {
	res, err := r.q.ExecContext(context.Background(), `
		INSERT INTO stock_cubiertas (marca, modelo, medida, dot, condicion, cantidad, ubicacion)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Brand, t.Model, t.Size, t.DOT, t.Cond, t.Quantity, t.Location,
	)
	if err != nil {
		return 0, fmt.Errorf("insert lote cubiertas: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene un lote por id.
func (r *TireRepo) GetByID(id int64) (*entity.TireLot, error) {
	row := r.q.QueryRowContext(context.Background(),
		`SELECT `+tireColumns+` FROM stock_cubiertas WHERE id = ?`, id)
	return scanTireLot(row)
}

// List devuelve todos los lotes ordenados por medida.
func (r *TireRepo) List() ([]*entity.TireLot, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT `+tireColumns+` FROM stock_cubiertas ORDER BY medida, condicion`)
	if err != nil {
		return nil, fmt.Errorf("list cubiertas: %w", err)
	}
	defer rows.Close()

	var out []*entity.TireLot
	for rows.Next() {
		t, err := scanTireLot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update actualiza un lote.
func (r *TireRepo) Update(t *entity.TireLot) error {
	res, err := r.q.ExecContext(context.Background(), `
		UPDATE stock_cubiertas SET marca = ?, modelo = ?, medida = ?, dot = ?, condicion = ?, cantidad = ?, ubicacion = ?
		WHERE id = ?`,
		t.Brand, t.Model, t.Size, t.DOT, t.Cond, t.Quantity, t.Location, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update lote cubiertas: %w", err)
	}
	return requireRow(res)
}

// Delete elimina un lote.
func (r *TireRepo) Delete(id int64) error {
	res, err := r.q.ExecContext(context.Background(), `DELETE FROM stock_cubiertas WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lote cubiertas: %w", err)
	}
	return requireRow(res)
}

// TotalUnits suma las cubiertas de todos los lotes.
func (r *TireRepo) TotalUnits() (int64, error) {
	var total int64
	err := r.q.QueryRowContext(context.Background(),
		`SELECT COALESCE(SUM(cantidad), 0) FROM stock_cubiertas`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total cubiertas: %w", err)
	}
	return total, nil
}

func scanTireLot(row rowScanner) (*entity.TireLot, error) {
	var t entity.TireLot
	err := row.Scan(&t.ID, &t.Brand, &t.Model, &t.Size, &t.DOT, &t.Cond, &t.Quantity, &t.Location)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan lote cubiertas: %w", err)
	}
	return &t, nil
}
