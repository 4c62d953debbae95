package fleet

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	domfleet "github.com/transportechiro/flota-api/internal/domain/fleet"
	"github.com/transportechiro/flota-api/internal/domain/repository"
	"github.com/transportechiro/flota-api/pkg/logger"
)

// UseCase administra la flota: altas y bajas de móviles, kilometraje y el
// estado de service derivado del intervalo configurado.
type UseCase struct {
	txRunner  TxRunner
	vehicles  repository.VehicleRepository
	fuel      repository.FuelRepository
	analytics repository.AnalyticsRepository
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	vehicles repository.VehicleRepository,
	fuel repository.FuelRepository,
	analytics repository.AnalyticsRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{txRunner: txRunner, vehicles: vehicles, fuel: fuel, analytics: analytics, log: log}
}

// CreateVehicle da de alta un móvil.
func (uc *UseCase) CreateVehicle(ctx context.Context, in dto.CreateVehicleRequest) (*entity.Vehicle, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.CurrentKM < 0 || in.LastServiceKM < 0 {
		return nil, domain.ErrInvalidInput
	}
	v := &entity.Vehicle{
		Name:              name,
		Plate:             strings.TrimSpace(in.Plate),
		Model:             strings.TrimSpace(in.Model),
		CurrentKM:         in.CurrentKM,
		LastServiceKM:     in.LastServiceKM,
		ServiceIntervalKM: in.ServiceIntervalKM,
	}
	id, err := uc.vehicles.Create(v)
	if err != nil {
		return nil, err
	}
	v.ID = id
	uc.log.Info().Int64("vehiculo_id", id).Str("nombre", v.Name).Msg("móvil dado de alta")
	return v, nil
}

// GetVehicle devuelve un móvil por id.
func (uc *UseCase) GetVehicle(ctx context.Context, id int64) (*entity.Vehicle, error) {
	return uc.vehicles.GetByID(id)
}

// ListVehicles devuelve la flota completa.
func (uc *UseCase) ListVehicles(ctx context.Context) ([]*entity.Vehicle, error) {
	return uc.vehicles.List()
}

// UpdateVehicle modifica los datos maestros del móvil. El kilometraje va por
// UpdateOdometer, que aplica la guarda de retroceso.
func (uc *UseCase) UpdateVehicle(ctx context.Context, id int64, in dto.CreateVehicleRequest) (*entity.Vehicle, error) {
	v, err := uc.vehicles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		v.Name = name
	}
	v.Plate = strings.TrimSpace(in.Plate)
	v.Model = strings.TrimSpace(in.Model)
	if in.LastServiceKM >= 0 {
		v.LastServiceKM = in.LastServiceKM
	}
	v.ServiceIntervalKM = in.ServiceIntervalKM
	if err := uc.vehicles.Update(v); err != nil {
		return nil, err
	}
	return v, nil
}

// UpdateOdometer actualiza el kilometraje. Un valor menor al vigente se
// rechaza salvo corrección manual explícita (force).
func (uc *UseCase) UpdateOdometer(ctx context.Context, id int64, in dto.UpdateOdometerRequest) (*entity.Vehicle, error) {
	v, err := uc.vehicles.GetByID(id)
	if err != nil {
		return nil, err
	}
	if in.KM < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.KM < v.CurrentKM && !in.Force {
		return nil, domain.ErrOdometerRollback
	}
	if err := uc.vehicles.UpdateOdometer(v.ID, in.KM); err != nil {
		return nil, err
	}
	if in.Force && in.KM < v.CurrentKM {
		uc.log.Warn().
			Int64("vehiculo_id", v.ID).
			Int64("km_anterior", v.CurrentKM).
			Int64("km_nuevo", in.KM).
			Msg("corrección manual de kilometraje hacia atrás")
	}
	v.CurrentKM = in.KM
	return v, nil
}

// DeleteVehicle elimina un móvil en dos pasos: sin confirmar devuelve
// ErrConfirmationNeeded y no borra nada.
func (uc *UseCase) DeleteVehicle(ctx context.Context, id int64, confirm bool) error {
	v, err := uc.vehicles.GetByID(id)
	if err != nil {
		return err
	}
	if !confirm {
		return domain.ErrConfirmationNeeded
	}
	if err := uc.vehicles.Delete(v.ID); err != nil {
		return err
	}
	uc.log.Warn().Int64("vehiculo_id", v.ID).Str("nombre", v.Name).Msg("móvil eliminado")
	return nil
}

// ServiceStatus calcula el estado de service del móvil.
func (uc *UseCase) ServiceStatus(v *entity.Vehicle) domfleet.ServiceStatus {
	return domfleet.Evaluate(v.CurrentKM, v.LastServiceKM, v.ServiceIntervalKM)
}

// ServiceAlerts devuelve los móviles con service vencido o próximo.
func (uc *UseCase) ServiceAlerts(ctx context.Context) ([]*entity.Vehicle, error) {
	vehicles, err := uc.vehicles.List()
	if err != nil {
		return nil, err
	}
	var alerts []*entity.Vehicle
	for _, v := range vehicles {
		s := domfleet.Evaluate(v.CurrentKM, v.LastServiceKM, v.ServiceIntervalKM)
		if s.State != domfleet.StateOK {
			alerts = append(alerts, v)
		}
	}
	return alerts, nil
}

// CostPerKM calcula el costo por kilómetro de cada móvil: mantenimiento más
// combustible sobre los kilómetros recorridos entre la primera y la última
// carga. Sin recorrido registrado, el CPK queda en cero.
func (uc *UseCase) CostPerKM(ctx context.Context) ([]*dto.VehicleCPKDTO, error) {
	maint, err := uc.analytics.CostByVehicle()
	if err != nil {
		return nil, err
	}
	fuelAgg, err := uc.analytics.FuelByVehicle()
	if err != nil {
		return nil, err
	}

	maintByID := make(map[int64]*repository.VehicleCost, len(maint))
	for _, m := range maint {
		maintByID[m.VehicleID] = m
	}

	out := make([]*dto.VehicleCPKDTO, 0, len(fuelAgg))
	for _, f := range fuelAgg {
		row := &dto.VehicleCPKDTO{
			VehicleID:   f.VehicleID,
			VehicleName: f.VehicleName,
			FuelCost:    f.Cost,
			KMTravelled: f.MaxKM - f.MinKM,
		}
		if m, ok := maintByID[f.VehicleID]; ok {
			row.MaintenanceCost = m.Total
		}
		if row.KMTravelled > 0 {
			total := row.MaintenanceCost.Add(row.FuelCost)
			row.CostPerKM = total.DivRound(decimal.NewFromInt(row.KMTravelled), 2)
		}
		out = append(out, row)
	}
	return out, nil
}
