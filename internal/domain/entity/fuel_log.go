package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// FuelLog registra una carga de combustible. OdometerKM actualiza el
// kilometraje del móvil como efecto secundario, previa validación de que
// no retrocede.
type FuelLog struct {
	ID         int64
	Date       time.Time
	VehicleID  int64
	DriverID   *int64
	Liters     decimal.Decimal
	Cost       decimal.Decimal
	OdometerKM int64
}
