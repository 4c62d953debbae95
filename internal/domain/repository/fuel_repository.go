package repository

import (
	"github.com/shopspring/decimal"

	"github.com/transportechiro/flota-api/internal/domain/entity"
)

// DriverConsumption es una fila del ranking de consumo por chofer.
type DriverConsumption struct {
	DriverName  string
	Loads       int64
	TotalLiters decimal.Decimal
}

// FuelRepository puerto de persistencia de cargas de combustible.
type FuelRepository interface {
	Create(f *entity.FuelLog) (int64, error)
	List(limit int) ([]*entity.FuelLog, error)
	ListByVehicle(vehicleID int64, limit int) ([]*entity.FuelLog, error)
	ConsumptionRanking() ([]*DriverConsumption, error)
}
