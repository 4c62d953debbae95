package http

import (
	"github.com/transportechiro/flota-api/internal/application/dto"
	"github.com/transportechiro/flota-api/internal/domain/entity"
	domfleet "github.com/transportechiro/flota-api/internal/domain/fleet"
)

const dateLayout = "2006-01-02"

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

func driverToDTO(d *entity.Driver) dto.DriverResponse {
	return dto.DriverResponse{ID: d.ID, Name: d.Name, DNI: d.DNI, Phone: d.Phone, Status: d.Status}
}

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

func movementToDTO(m *entity.StockMovement, itemName string) dto.MovementResponse {
	out := dto.MovementResponse{
		TransactionID: m.TransactionID,
		StockItemID:   m.StockItemID,
		ItemName:      itemName,
		Type:          m.Type,
		Quantity:      m.Quantity,
		WorkOrderID:   m.WorkOrderID,
		Destination:   m.Destination,
		Supplier:      m.Supplier,
		Receipt:       m.Receipt,
		User:          m.User,
		CreatedAt:     m.Date.Format("2006-01-02 15:04"),
	}
	if m.UnitPrice.Valid {
		price := m.UnitPrice.Decimal
		out.UnitPrice = &price
	}
	return out
}

func orderToDTO(o *entity.WorkOrder, vehicleName, driverName string, tasks []dto.OrderTaskDTO, reqs []dto.PartsRequestResponse) dto.WorkOrderResponse {
	out := dto.WorkOrderResponse{
		ID:               o.ID,
		VehicleID:        o.VehicleID,
		VehicleName:      vehicleName,
		DriverID:         o.DriverID,
		DriverName:       driverName,
		Date:             o.Date.Format(dateLayout),
		Category:         o.Category,
		Responsible:      o.Responsible,
		ExternalWorkshop: o.ExternalWorkshop,
		Status:           o.Status,
		Tasks:            tasks,
		Notes:            o.Observations,
		Checklist: dto.ChecklistDTO{
			Oil:    o.Checklist.Oil,
			Brakes: o.Checklist.Brakes,
			Lights: o.Checklist.Lights,
			Tires:  o.Checklist.Tires,
		},
		TotalCost:      o.TotalCost,
		ThirdPartyCost: o.ThirdPartyCost,
		PartsRequests:  reqs,
		CreatedBy:      o.CreatedBy,
	}
	if o.ClosedAt != nil {
		out.ClosedAt = o.ClosedAt.Format("2006-01-02 15:04")
	}
	return out
}

func requestToDTO(r *entity.PartsRequest, itemName string) dto.PartsRequestResponse {
	return dto.PartsRequestResponse{
		ID:          r.ID,
		WorkOrderID: r.WorkOrderID,
		StockItemID: r.StockItemID,
		ItemName:    itemName,
		Quantity:    r.Quantity,
		Status:      r.Status,
		RequestedBy: r.RequestedBy,
		ResolvedBy:  r.ResolvedBy,
	}
}

func fuelLogToDTO(f *entity.FuelLog, vehicleName, driverName string) dto.FuelLogResponse {
	return dto.FuelLogResponse{
		ID:          f.ID,
		VehicleID:   f.VehicleID,
		VehicleName: vehicleName,
		DriverID:    f.DriverID,
		DriverName:  driverName,
		Date:        f.Date.Format(dateLayout),
		Liters:      f.Liters,
		Cost:        f.Cost,
		OdometerKM:  f.OdometerKM,
	}
}

func supplierToDTO(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:      s.ID,
		Company: s.Company,
		Contact: s.Contact,
		Phone:   s.Phone,
		Address: s.Address,
		Rubro:   s.Rubro,
	}
}

func noticeToDTO(n *entity.Notice, vehicleName string) dto.NoticeResponse {
	return dto.NoticeResponse{
		ID:          n.ID,
		VehicleID:   n.VehicleID,
		VehicleName: vehicleName,
		Description: n.Description,
		Status:      n.Status,
		Date:        n.Date.Format(dateLayout),
	}
}

func tireToDTO(t *entity.TireLot) dto.TireLotResponse {
	return dto.TireLotResponse{
		ID:       t.ID,
		Brand:    t.Brand,
		Model:    t.Model,
		Size:     t.Size,
		DOT:      t.DOT,
		Cond:     t.Cond,
		Quantity: t.Quantity,
		Location: t.Location,
	}
}

func documentToDTO(d *entity.Document) dto.DocumentResponse {
	return dto.DocumentResponse{
		ID:          d.ID,
		WorkOrderID: d.WorkOrderID,
		StoredName:  d.StoredName,
		Description: d.Description,
		MimeType:    d.MimeType,
		UploadedAt:  d.UploadedAt.Format("2006-01-02 15:04"),
	}
}
