package usecase

import (
	"context"

	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/application/fleet"
	"github.com/transportechiro/flota-api/internal/application/inventory"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	"github.com/transportechiro/flota-api/internal/domain/repository"
)

// DashboardUseCase arma el resumen operativo de la pantalla principal:
// OTs por estado, solicitudes pendientes, stock bajo, alertas de service,
// novedades activas y los agregados de gasto.
type DashboardUseCase struct {
	analytics repository.AnalyticsRepository
	requests  repository.PartsRequestRepository
	notices   repository.NoticeRepository
	tires     repository.TireRepository
	inventory *inventory.UseCase
	fleet     *fleet.UseCase
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	analytics repository.AnalyticsRepository,
	requests repository.PartsRequestRepository,
	notices repository.NoticeRepository,
	tires repository.TireRepository,
	inv *inventory.UseCase,
	fl *fleet.UseCase,
) *DashboardUseCase {
	return &DashboardUseCase{
		analytics: analytics,
		requests:  requests,
		notices:   notices,
		tires:     tires,
		inventory: inv,
		fleet:     fl,
	}
}

// Summary arma el tablero completo. Cada bloque falla por separado solo si
// falla su consulta; no hay caché, el tablero refleja la BD al momento.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardDTO, error) {
	out := &dto.DashboardDTO{}

	byStatus, err := uc.analytics.CountOrdersByStatus()
	if err != nil {
		return nil, err
	}
	out.OpenOrders = byStatus[entity.OrderPending]
	out.InProcessOrders = byStatus[entity.OrderInProcess]
	out.ClosedOrders = byStatus[entity.OrderClosed]

	pending, err := uc.requests.ListPending()
	if err != nil {
		return nil, err
	}
	out.PendingRequests = int64(len(pending))

	low, err := uc.inventory.LowStockItems(ctx)
	if err != nil {
		return nil, err
	}
	for _, it := range low {
		out.LowStockItems = append(out.LowStockItems, stockItemToDTO(it))
	}

	valuation, err := uc.inventory.Valuation(ctx)
	if err != nil {
		return nil, err
	}
	out.StockValue = valuation.TotalValue

	alerts, err := uc.fleet.ServiceAlerts(ctx)
	if err != nil {
		return nil, err
	}
	for _, v := range alerts {
		out.ServiceAlerts = append(out.ServiceAlerts, vehicleToDTO(v, uc.fleet.ServiceStatus(v)))
	}

	notices, err := uc.notices.ListActive()
	if err != nil {
		return nil, err
	}
	for _, n := range notices {
		out.ActiveNotices = append(out.ActiveNotices, dto.NoticeResponse{
			ID:          n.ID,
			VehicleID:   n.VehicleID,
			Description: n.Description,
			Status:      n.Status,
			Date:        n.Date.Format("2006-01-02"),
		})
	}

	if out.TireUnits, err = uc.tires.TotalUnits(); err != nil {
		return nil, err
	}

	byCategory, err := uc.analytics.CostByCategory()
	if err != nil {
		return nil, err
	}
	for _, c := range byCategory {
		out.CostByCategory = append(out.CostByCategory, dto.CategoryCostDTO{
			Category: c.Category,
			Orders:   c.Orders,
			Total:    c.Total,
		})
	}

	byVehicle, err := uc.analytics.CostByVehicle()
	if err != nil {
		return nil, err
	}
	for _, v := range byVehicle {
		out.CostByVehicle = append(out.CostByVehicle, dto.VehicleCostDTO{
			VehicleID:   v.VehicleID,
			VehicleName: v.VehicleName,
			Orders:      v.Orders,
			Total:       v.Total,
		})
	}

	ranking, err := uc.fleet.FuelRanking(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range ranking {
		out.FuelRanking = append(out.FuelRanking, dto.DriverConsumptionDTO{
			DriverName:  r.DriverName,
			Loads:       r.Loads,
			TotalLiters: r.TotalLiters,
		})
	}

	return out, nil
}
