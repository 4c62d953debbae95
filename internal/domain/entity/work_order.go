package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de trabajo. Solo transiciones hacia adelante:
// Pendiente → En Proceso → Cerrada (En Proceso es opcional). No hay reapertura.
const (
	OrderPending   = "Pendiente"
	OrderInProcess = "En Proceso"
	OrderClosed    = "Cerrada"
)

// Responsables válidos de una OT. TallerExterno exige ExternalWorkshop.
const (
	ResponsibleMaxi           = "Maxi"
	ResponsibleCristian       = "Cristian"
	ResponsibleAssignedDriver = "Chofer Asignado"
	ResponsibleExternal       = "Taller Externo"
	ResponsibleOther          = "Otro"
)

// Categories son las categorías cerradas de mantenimiento.
var Categories = []string{
	"Mecánica General",
	"Mecánica Pesada (Motor/Caja)",
	"Electricidad",
	"Frenos",
	"Neumáticos / Gomería",
	"Carrocería",
	"Pintura",
	"Aire Acondicionado",
	"Sistema de Combustible",
	"Lavadero",
	"Servicios / Lubricación",
	"Conductores",
	"Reparaciones Generales",
}

// ValidCategory indica si la categoría pertenece al conjunto cerrado.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// ValidResponsible indica si el responsable pertenece al conjunto cerrado.
func ValidResponsible(r string) bool {
	switch r {
	case ResponsibleMaxi, ResponsibleCristian, ResponsibleAssignedDriver, ResponsibleExternal, ResponsibleOther:
		return true
	}
	return false
}

// Checklist marca los rubros de service revisados en la OT.
type Checklist struct {
	Oil    bool `json:"aceite"`
	Brakes bool `json:"frenos"`
	Lights bool `json:"luces"`
	Tires  bool `json:"neumaticos"`
}

// WorkOrder representa una orden de trabajo (OT) del taller.
// PartsSnapshot guarda el pedido de repuestos tal como se solicitó, para
// auditoría; el stock se mueve recién al aprobar la solicitud.
type WorkOrder struct {
	ID               int64
	Date             time.Time
	VehicleID        int64
	DriverID         *int64
	Description      string
	Checklist        Checklist
	Category         string
	Status           string
	TotalCost        decimal.Decimal
	ThirdPartyCost   decimal.Decimal
	Responsible      string
	ExternalWorkshop string // solo con ResponsibleExternal
	PartsSnapshot    json.RawMessage
	Observations     string
	ClosedAt         *time.Time
	CreatedBy        string
	CreatedAt        time.Time
}

// Closed indica si la OT ya no admite transiciones.
func (o *WorkOrder) Closed() bool { return o.Status == OrderClosed }

// OrderTask vincula una OT con una tarea canónica del catálogo.
type OrderTask struct {
	ID          int64
	WorkOrderID int64
	TaskID      int64
	RawText     string // texto original tipeado por el usuario
}
