package entity

import "time"

// Estados de una solicitud de repuestos.
const (
	RequestPending  = "Pendiente"
	RequestApproved = "Aprobada"
	RequestRejected = "Rechazada"
)

// PartsRequest es una línea de pedido de repuestos de una OT.
// El stock NO se descuenta al crear la OT: queda pendiente hasta que un
// administrador la apruebe (o rechace). Cada línea se resuelve por separado.
type PartsRequest struct {
	ID          int64
	WorkOrderID int64
	StockItemID int64
	Quantity    int64
	Status      string
	RequestedBy string
	ResolvedBy  string
	ResolvedAt  *time.Time
}

// Resolved indica si la línea ya fue aprobada o rechazada.
func (r *PartsRequest) Resolved() bool { return r.Status != RequestPending }
