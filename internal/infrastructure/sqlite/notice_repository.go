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

var _ repository.NoticeRepository = (*NoticeRepo)(nil)

// NoticeRepo implementación del puerto NoticeRepository sobre SQLite.
type NoticeRepo struct {
	q Querier
}

// NewNoticeRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewNoticeRepository(q Querier) *NoticeRepo {
	return &NoticeRepo{q: q}
}

// Create persiste una novedad.
func (r *NoticeRepo) Create(n *entity.Notice) (int64, error) {
	res, err := r.q.ExecContext(context.Background(),
		`INSERT INTO novedades (fecha, vehiculo_id, descripcion, estado) VALUES (?, ?, ?, ?)`,
		n.Date, n.VehicleID, n.Description, n.Status,
	)
	if err != nil {
		return 0, fmt.Errorf("insert novedad: %w", err)
	}
	return res.LastInsertId()
}

// GetByID obtiene una novedad por id.
func (r *NoticeRepo) GetByID(id int64) (*entity.Notice, error) {
	var n entity.Notice
	err := r.q.QueryRowContext(context.Background(),
		`SELECT id, fecha, vehiculo_id, descripcion, estado FROM novedades WHERE id = ?`, id,
	).Scan(&n.ID, &n.Date, &n.VehicleID, &n.Description, &n.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get novedad: %w", err)
	}
	return &n, nil
}

// ListActive devuelve las novedades sin archivar, más recientes primero.
func (r *NoticeRepo) ListActive() ([]*entity.Notice, error) {
	rows, err := r.q.QueryContext(context.Background(), `
		SELECT id, fecha, vehiculo_id, descripcion, estado FROM novedades
		WHERE estado = ? ORDER BY fecha DESC, id DESC`,
		entity.NoticeActive,
	)
	if err != nil {
		return nil, fmt.Errorf("list novedades: %w", err)
	}
	defer rows.Close()

	var out []*entity.Notice
	for rows.Next() {
		var n entity.Notice
		if err := rows.Scan(&n.ID, &n.Date, &n.VehicleID, &n.Description, &n.Status); err != nil {
			return nil, fmt.Errorf("scan novedad: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

// Archive archiva la novedad.
func (r *NoticeRepo) Archive(id int64) error {
	res, err := r.q.ExecContext(context.Background(),
		`UPDATE novedades SET estado = ? WHERE id = ?`, entity.NoticeArchived, id)
	if err != nil {
		return fmt.Errorf("archivar novedad: %w", err)
	}
	return requireRow(res)
}
