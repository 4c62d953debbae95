package dto

import "github.com/shopspring/decimal"

// OrderPartLine línea de repuesto solicitada al crear una OT.
type OrderPartLine struct {
	StockItemID int64 `json:"repuesto_id"`
	Quantity    int64 `json:"cantidad"`
}

// CreateWorkOrderRequest body para POST /api/workorders.
// Tasks admite texto libre: cada línea se resuelve contra el catálogo
// canónico de tareas.
type CreateWorkOrderRequest struct {
	VehicleID        int64           `json:"vehiculo_id"`
	DriverID         *int64          `json:"chofer_id,omitempty"`
	Date             string          `json:"fecha,omitempty"` // YYYY-MM-DD; por defecto hoy
	Category         string          `json:"rubro"`
	Responsible      string          `json:"responsable"`
	ExternalWorkshop string          `json:"taller_externo,omitempty"`
	SupplierID       *int64          `json:"proveedor_id,omitempty"`
	NewSupplier      string          `json:"proveedor_nuevo,omitempty"`
	Tasks            []string        `json:"tareas"`
	Notes            string          `json:"observaciones,omitempty"`
	Checklist        ChecklistDTO    `json:"checklist"`
	Parts            []OrderPartLine `json:"repuestos,omitempty"`
	ThirdPartyCost   decimal.Decimal `json:"costo_terceros"`
	OdometerKM       *int64          `json:"km_actual,omitempty"`
}

// ChecklistDTO verificación rápida de la unidad al ingresar al taller.
type ChecklistDTO struct {
	Oil    bool `json:"aceite"`
	Brakes bool `json:"frenos"`
	Lights bool `json:"luces"`
	Tires  bool `json:"neumaticos"`
}

// UpdateWorkOrderRequest body para PUT /api/workorders/:id.
type UpdateWorkOrderRequest struct {
	Status         *string          `json:"estado,omitempty"`
	Responsible    *string          `json:"responsable,omitempty"`
	Notes          *string          `json:"observaciones,omitempty"`
	ThirdPartyCost *decimal.Decimal `json:"costo_terceros,omitempty"`
}

// CloseWorkOrderRequest body para POST /api/workorders/:id/close. El costo de
// terceros es opcional: al cerrar suele conocerse recién la factura final.
type CloseWorkOrderRequest struct {
	FinalNotes     string           `json:"observaciones_cierre,omitempty"`
	ThirdPartyCost *decimal.Decimal `json:"costo_terceros,omitempty"`
}

// WorkOrderResponse OT completa para detalle e historial.
type WorkOrderResponse struct {
	ID               int64                  `json:"id"`
	VehicleID        int64                  `json:"vehiculo_id"`
	VehicleName      string                 `json:"vehiculo,omitempty"`
	DriverID         *int64                 `json:"chofer_id,omitempty"`
	DriverName       string                 `json:"chofer,omitempty"`
	Date             string                 `json:"fecha"`
	Category         string                 `json:"rubro"`
	Responsible      string                 `json:"responsable"`
	ExternalWorkshop string                 `json:"taller_externo,omitempty"`
	Status           string                 `json:"estado"`
	Tasks            []OrderTaskDTO         `json:"tareas"`
	Notes            string                 `json:"observaciones,omitempty"`
	Checklist        ChecklistDTO           `json:"checklist"`
	TotalCost        decimal.Decimal        `json:"costo_total"`
	ThirdPartyCost   decimal.Decimal        `json:"costo_terceros"`
	PartsRequests    []PartsRequestResponse `json:"solicitudes,omitempty"`
	ClosedAt         string                 `json:"fecha_cierre,omitempty"`
	CreatedBy        string                 `json:"creado_por,omitempty"`
}

// OrderTaskDTO tarea de una OT con su forma canónica.
type OrderTaskDTO struct {
	TaskID   int64  `json:"tarea_id"`
	Name     string `json:"nombre"`
	RawText  string `json:"texto_original,omitempty"`
	WasAlias bool   `json:"-"`
}

// PartsRequestResponse línea de solicitud de repuesto con su estado.
type PartsRequestResponse struct {
	ID          int64  `json:"id"`
	WorkOrderID int64  `json:"ot_id"`
	StockItemID int64  `json:"repuesto_id"`
	ItemName    string `json:"repuesto,omitempty"`
	Quantity    int64  `json:"cantidad"`
	Status      string `json:"estado"`
	RequestedBy string `json:"solicitado_por,omitempty"`
	ResolvedBy  string `json:"resuelto_por,omitempty"`
}

// ResolvePartsRequest body para POST /api/parts-requests/:id/approve|reject.
type ResolvePartsRequest struct {
	Reason string `json:"motivo,omitempty"`
}
