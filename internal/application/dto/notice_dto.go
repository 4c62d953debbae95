package dto

// CreateNoticeRequest body para POST /api/notices.
type CreateNoticeRequest struct {
	VehicleID   int64  `json:"vehiculo_id"`
	Description string `json:"descripcion"`
}

// NoticeResponse novedad en respuestas.
type NoticeResponse struct {
	ID          int64  `json:"id"`
	VehicleID   int64  `json:"vehiculo_id"`
	VehicleName string `json:"vehiculo,omitempty"`
	Description string `json:"descripcion"`
	Status      string `json:"estado"`
	Date        string `json:"fecha"`
}

// PromoteNoticeRequest body para POST /api/notices/:id/promote.
// Crea una OT a partir de la novedad y la archiva.
type PromoteNoticeRequest struct {
	Category    string `json:"rubro"`
	Responsible string `json:"responsable"`
}
