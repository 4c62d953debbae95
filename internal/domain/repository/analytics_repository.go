package repository

import "github.com/shopspring/decimal"

// CategoryCost agrega el gasto de OTs cerradas por rubro.
type CategoryCost struct {
	Category string
	Orders   int64
	Total    decimal.Decimal
}

// VehicleCost agrega el gasto de OTs cerradas por móvil.
type VehicleCost struct {
	VehicleID   int64
	VehicleName string
	Orders      int64
	Total       decimal.Decimal
}

// VehicleFuel agrega litros y gasto de combustible por móvil.
type VehicleFuel struct {
	VehicleID   int64
	VehicleName string
	Liters      decimal.Decimal
	Cost        decimal.Decimal
	MinKM       int64
	MaxKM       int64
}

// AnalyticsRepository consultas agregadas para tablero e informes.
type AnalyticsRepository interface {
	CountOrdersByStatus() (map[string]int64, error)
	CostByCategory() ([]*CategoryCost, error)
	CostByVehicle() ([]*VehicleCost, error)
	FuelByVehicle() ([]*VehicleFuel, error)
	MaintenanceCostTotal() (decimal.Decimal, error)
}
