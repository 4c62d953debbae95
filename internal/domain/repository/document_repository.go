package repository

import "github.com/transportechiro/flota-api/internal/domain/entity"

// DocumentRepository puerto de metadatos de archivos adjuntos.
type DocumentRepository interface {
	Create(d *entity.Document) (int64, error)
	List() ([]*entity.Document, error)
	ListByWorkOrder(orderID int64) ([]*entity.Document, error)
}
