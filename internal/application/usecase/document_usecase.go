package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// FileStore puerto de almacenamiento de adjuntos en disco.
type FileStore interface {
	// Save persiste el archivo y devuelve el nombre con el que quedó
	// guardado (DOC_<otID>_<unix>_<nombre original> saneado).
	Save(orderID int64, originalName string, data []byte) (string, error)
	// Path devuelve la ruta en disco de un archivo ya guardado, o
	// ErrNotFound si no existe.
	Path(storedName string) (string, error)
}

// DocumentUseCase administra los adjuntos de OTs: el binario va a disco y
// los metadatos a la BD.
type DocumentUseCase struct {
	documents repository.DocumentRepository
	orders    repository.WorkOrderRepository
	files     FileStore
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(
	documents repository.DocumentRepository,
	orders repository.WorkOrderRepository,
	files FileStore,
) *DocumentUseCase {
	return &DocumentUseCase{documents: documents, orders: orders, files: files}
}

// Attach guarda un adjunto. Con orderID mayor a cero valida que la OT exista;
// en cero el documento es general (seguros, habilitaciones).
func (uc *DocumentUseCase) Attach(ctx context.Context, orderID int64, name, description, mimeType string, data []byte) (*entity.Document, error) {
	if strings.TrimSpace(name) == "" || len(data) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if orderID > 0 {
		if _, err := uc.orders.GetByID(orderID); err != nil {
			return nil, err
		}
	}
	stored, err := uc.files.Save(orderID, name, data)
	if err != nil {
		return nil, err
	}
	doc := &entity.Document{
		UploadedAt:  time.Now(),
		StoredName:  stored,
		Description: strings.TrimSpace(description),
		MimeType:    mimeType,
		WorkOrderID: orderID,
	}
	id, err := uc.documents.Create(doc)
	if err != nil {
		return nil, err
	}
	doc.ID = id
	return doc, nil
}

// List devuelve todos los adjuntos, o los de una OT.
func (uc *DocumentUseCase) List(ctx context.Context, orderID int64) ([]*entity.Document, error) {
	if orderID > 0 {
		return uc.documents.ListByWorkOrder(orderID)
	}
	return uc.documents.List()
}

// FilePath devuelve la ruta en disco de un adjunto para servirlo.
func (uc *DocumentUseCase) FilePath(ctx context.Context, storedName string) (string, error) {
	return uc.files.Path(storedName)
}
