package dto

import "github.com/shopspring/decimal"

// DashboardDTO resumen operativo para la pantalla principal.
type DashboardDTO struct {
	OpenOrders       int64                  `json:"ots_abiertas"`
	InProcessOrders  int64                  `json:"ots_en_proceso"`
	ClosedOrders     int64                  `json:"ots_cerradas"`
	PendingRequests  int64                  `json:"solicitudes_pendientes"`
	LowStockItems    []StockItemResponse    `json:"stock_bajo"`
	ServiceAlerts    []VehicleResponse      `json:"alertas_service"`
	ActiveNotices    []NoticeResponse       `json:"novedades"`
	StockValue       decimal.Decimal        `json:"valor_panol"`
	TireUnits        int64                  `json:"cubiertas_totales"`
	CostByCategory   []CategoryCostDTO      `json:"gasto_por_rubro"`
	CostByVehicle    []VehicleCostDTO       `json:"gasto_por_movil"`
	FuelRanking      []DriverConsumptionDTO `json:"ranking_consumo"`
}

// CategoryCostDTO gasto agregado por rubro.
type CategoryCostDTO struct {
	Category string          `json:"rubro"`
	Orders   int64           `json:"ots"`
	Total    decimal.Decimal `json:"total"`
}

// VehicleCostDTO gasto agregado por móvil.
type VehicleCostDTO struct {
	VehicleID   int64           `json:"vehiculo_id"`
	VehicleName string          `json:"vehiculo"`
	Orders      int64           `json:"ots"`
	Total       decimal.Decimal `json:"total"`
}
