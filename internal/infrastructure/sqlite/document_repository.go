package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación del puerto DocumentRepository sobre SQLite.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste los metadatos de un adjunto.
func (r *DocumentRepo) Create(d *entity.Document) (int64, error) {
	res, err := r.q.ExecContext(context.Background(),
		`INSERT INTO documentos (subido_en, archivo, descripcion, tipo, ot_id) VALUES (?, ?, ?, ?, ?)`,
		d.UploadedAt, d.StoredName, d.Description, d.MimeType, d.WorkOrderID,
	)
	if err != nil {
		return 0, fmt.Errorf("insert documento: %w", err)
	}
	return res.LastInsertId()
}

// List devuelve todos los adjuntos, más recientes primero.
func (r *DocumentRepo) List() ([]*entity.Document, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT id, subido_en, archivo, descripcion, tipo, ot_id FROM documentos ORDER BY subido_en DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list documentos: %w", err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

// ListByWorkOrder devuelve los adjuntos de una OT.
func (r *DocumentRepo) ListByWorkOrder(orderID int64) ([]*entity.Document, error) {
	rows, err := r.q.QueryContext(context.Background(),
		`SELECT id, subido_en, archivo, descripcion, tipo, ot_id FROM documentos WHERE ot_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list documentos por ot: %w", err)
	}
	defer rows.Close()
	return collectDocuments(rows)
}

func collectDocuments(rows *sql.Rows) ([]*entity.Document, error) {
	var out []*entity.Document
	for rows.Next() {
		var d entity.Document
		if err := rows.Scan(&d.ID, &d.UploadedAt, &d.StoredName, &d.Description, &d.MimeType, &d.WorkOrderID); err != nil {
			return nil, fmt.Errorf("scan documento: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}
