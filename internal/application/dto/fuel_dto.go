package dto

import "github.com/shopspring/decimal"

// CreateFuelLogRequest body para POST /api/fuel.
// Force permite registrar un odómetro menor al vigente (corrección manual).
type CreateFuelLogRequest struct {
	VehicleID  int64           `json:"vehiculo_id"`
	DriverID   *int64          `json:"chofer_id,omitempty"`
	Date       string          `json:"fecha,omitempty"` // YYYY-MM-DD; por defecto hoy
	Liters     decimal.Decimal `json:"litros"`
	Cost       decimal.Decimal `json:"costo"`
	OdometerKM int64           `json:"km"`
	Force      bool            `json:"force,omitempty"`
}

// FuelLogResponse carga de combustible en respuestas.
type FuelLogResponse struct {
	ID          int64           `json:"id"`
	VehicleID   int64           `json:"vehiculo_id"`
	VehicleName string          `json:"vehiculo,omitempty"`
	DriverID    *int64          `json:"chofer_id,omitempty"`
	DriverName  string          `json:"chofer,omitempty"`
	Date        string          `json:"fecha"`
	Liters      decimal.Decimal `json:"litros"`
	Cost        decimal.Decimal `json:"costo"`
	OdometerKM  int64           `json:"km"`
}

// DriverConsumptionDTO fila del ranking de consumo por chofer.
type DriverConsumptionDTO struct {
	DriverName  string          `json:"chofer"`
	Loads       int64           `json:"cargas"`
	TotalLiters decimal.Decimal `json:"litros_totales"`
}
