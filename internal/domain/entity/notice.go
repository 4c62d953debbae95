package entity

import "time"

// Estados de novedad.
const (
	NoticeActive   = "Activa"
	NoticeArchived = "Archivada"
)

// Notice es una novedad reportada sobre un móvil (ruido, luz, etc.).
// Puede promoverse a OT: se copia la descripción y se archiva la novedad.
type Notice struct {
	ID          int64
	Date        time.Time
	VehicleID   int64
	Description string
	Status      string
}
