package fleet

import (
	"context"
	"time"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// RegisterFuelLog registra una carga de combustible y actualiza el
// kilometraje del móvil como efecto secundario. Un odómetro menor al vigente
// se rechaza sin persistir nada, salvo corrección manual explícita (force):
// cargar 49.000 sobre un móvil en 50.000 es casi seguro un dedo de más.
func (uc *UseCase) RegisterFuelLog(ctx context.Context, in dto.CreateFuelLogRequest) (*entity.FuelLog, error) {
	if in.Liters.IsZero() || in.Liters.IsNegative() || in.Cost.IsNegative() || in.OdometerKM < 0 {
		return nil, domain.ErrInvalidInput
	}
	vehicle, err := uc.vehicles.GetByID(in.VehicleID)
	if err != nil {
		return nil, err
	}
	if in.OdometerKM < vehicle.CurrentKM && !in.Force {
		return nil, domain.ErrOdometerRollback
	}

	date := time.Now()
	if in.Date != "" {
		if date, err = time.Parse("2006-01-02", in.Date); err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	log := &entity.FuelLog{
		Date:       date,
		VehicleID:  in.VehicleID,
		DriverID:   in.DriverID,
		Liters:     in.Liters,
		Cost:       in.Cost,
		OdometerKM: in.OdometerKM,
	}

	// La carga y el arrastre del odómetro se escriben juntos o ninguno.
	err = uc.txRunner.Run(ctx, func(
		fuel repository.FuelRepository,
		vehicles repository.VehicleRepository,
	) error {
		id, err := fuel.Create(log)
		if err != nil {
			return err
		}
		log.ID = id
		return vehicles.UpdateOdometer(vehicle.ID, in.OdometerKM)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("carga_id", log.ID).
		Str("movil", vehicle.Name).
		Str("litros", in.Liters.String()).
		Int64("km", in.OdometerKM).
		Msg("carga de combustible registrada")
	return log, nil
}

// ListFuelLogs devuelve las últimas cargas, globales o de un móvil.
func (uc *UseCase) ListFuelLogs(ctx context.Context, vehicleID int64, limit int) ([]*entity.FuelLog, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if vehicleID > 0 {
		return uc.fuel.ListByVehicle(vehicleID, limit)
	}
	return uc.fuel.List(limit)
}

// FuelRanking devuelve el consumo agregado por chofer, de mayor a menor.
func (uc *UseCase) FuelRanking(ctx context.Context) ([]*repository.DriverConsumption, error) {
	return uc.fuel.ConsumptionRanking()
}
