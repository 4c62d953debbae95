package dto

// DocumentResponse archivo adjunto en respuestas.
type DocumentResponse struct {
	ID          int64  `json:"id"`
	WorkOrderID int64  `json:"ot_id,omitempty"`
	StoredName  string `json:"archivo"`
	Description string `json:"descripcion,omitempty"`
	MimeType    string `json:"tipo,omitempty"`
	UploadedAt  string `json:"fecha"`
}
