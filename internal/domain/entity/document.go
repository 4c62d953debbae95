package entity

import "time"

// Document es la fila de metadatos de un archivo adjunto en disco.
// StoredName sigue el formato DOC_<otID>_<unix>_<nombreOriginal>.
type Document struct {
	ID          int64
	UploadedAt  time.Time
	StoredName  string
	Description string
	MimeType    string
	WorkOrderID int64 // 0 = documento general, sin OT
}
