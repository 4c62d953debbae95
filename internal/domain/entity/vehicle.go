package entity

import "time"

// Vehicle representa una unidad de la flota (móvil).
// CurrentKM es monotónicamente creciente en operación normal; las correcciones
// manuales explícitas son el único camino para bajarlo.
type Vehicle struct {
	ID                int64
	Name              string // nombre del móvil, ej. "MB 1620"
	Plate             string
	Model             string
	CurrentKM         int64
	LastServiceKM     int64
	ServiceIntervalKM int64 // 0 o negativo = sin intervalo configurado
	KMUpdatedAt       *time.Time
}
