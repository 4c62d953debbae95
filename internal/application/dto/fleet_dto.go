package dto

import "github.com/shopspring/decimal"

// CreateVehicleRequest body para POST /api/vehicles.
type CreateVehicleRequest struct {
	Name              string `json:"nombre"`
	Plate             string `json:"patente,omitempty"`
	Model             string `json:"modelo,omitempty"`
	CurrentKM         int64  `json:"km_actual"`
	LastServiceKM     int64  `json:"km_ultimo_service"`
	ServiceIntervalKM int64  `json:"intervalo_service"`
}

// UpdateOdometerRequest body para PUT /api/vehicles/:id/odometer.
// Force permite una corrección manual hacia atrás.
type UpdateOdometerRequest struct {
	KM    int64 `json:"km"`
	Force bool  `json:"force,omitempty"`
}

// VehicleResponse móvil con su estado de service calculado.
type VehicleResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"nombre"`
	Plate             string `json:"patente,omitempty"`
	Model             string `json:"modelo,omitempty"`
	CurrentKM         int64  `json:"km_actual"`
	LastServiceKM     int64  `json:"km_ultimo_service"`
	ServiceIntervalKM int64  `json:"intervalo_service"`
	KMUpdatedAt       string `json:"km_actualizado,omitempty"`
	ServiceState      string `json:"estado_service"`
	KMSinceService    int64  `json:"km_desde_service"`
	KMRemaining       int64  `json:"km_restantes"`
	KMOverdue         int64  `json:"km_excedidos,omitempty"`
	ServicePercent    float64 `json:"porcentaje_service"`
}

// CreateDriverRequest body para POST /api/drivers.
type CreateDriverRequest struct {
	Name  string `json:"nombre"`
	DNI   string `json:"dni,omitempty"`
	Phone string `json:"telefono,omitempty"`
}

// DriverResponse chofer en respuestas.
type DriverResponse struct {
	ID     int64  `json:"id"`
	Name   string `json:"nombre"`
	DNI    string `json:"dni,omitempty"`
	Phone  string `json:"telefono,omitempty"`
	Status string `json:"estado"`
}

// VehicleCPKDTO costo por kilómetro de un móvil.
type VehicleCPKDTO struct {
	VehicleID       int64           `json:"vehiculo_id"`
	VehicleName     string          `json:"vehiculo"`
	MaintenanceCost decimal.Decimal `json:"costo_mantenimiento"`
	FuelCost        decimal.Decimal `json:"costo_combustible"`
	KMTravelled     int64           `json:"km_recorridos"`
	CostPerKM       decimal.Decimal `json:"costo_por_km"`
}
