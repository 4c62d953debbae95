package usecase

import (
	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	domfleet "github.com/transportechiro/flota-api/internal/domain/fleet"
)

func stockItemToDTO(it *entity.StockItem) dto.StockItemResponse {
	out := dto.StockItemResponse{
		ID:       it.ID,
		Name:     it.Name,
		Code:     it.Code,
		Rubro:    it.Rubro,
		Quantity: it.Quantity,
		Minimum:  it.Minimum,
		Supplier: it.Supplier,
		LowStock: it.LowStock(),
	}
	if it.UnitPrice.Valid {
		price := it.UnitPrice.Decimal
		out.UnitPrice = &price
	}
	return out
}

func vehicleToDTO(v *entity.Vehicle, s domfleet.ServiceStatus) dto.VehicleResponse {
	out := dto.VehicleResponse{
		ID:                v.ID,
		Name:              v.Name,
		Plate:             v.Plate,
		Model:             v.Model,
		CurrentKM:         v.CurrentKM,
		LastServiceKM:     v.LastServiceKM,
		ServiceIntervalKM: v.ServiceIntervalKM,
		ServiceState:      string(s.State),
		KMSinceService:    s.KMSince,
		KMRemaining:       s.KMRemaining,
		KMOverdue:         s.KMOverdue,
		ServicePercent:    s.Percent,
	}
	if v.KMUpdatedAt != nil {
		out.KMUpdatedAt = v.KMUpdatedAt.Format("2006-01-02 15:04")
	}
	return out
}
