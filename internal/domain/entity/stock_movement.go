package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex.
const (
	MovementEntry    = "ENTRADA"
	MovementExit     = "SALIDA"
	MovementCreation = "CREACION" // alta de artículo con cantidad inicial
)

// StockMovement es una fila del kardex: registro inmutable de un ingreso o
// egreso de stock. Nunca se edita ni se borra.
type StockMovement struct {
	ID            int64
	TransactionID string // agrupa los movimientos de una misma operación
	StockItemID   int64
	Date          time.Time
	Type          string
	Quantity      int64 // siempre positivo; el signo lo da Type
	UnitPrice     decimal.NullDecimal
	User          string
	Destination   string // móvil o destino interno en SALIDA
	Supplier      string // en ENTRADA
	Receipt       string // nro. de comprobante en ENTRADA
	WorkOrderID   *int64 // salidas originadas por aprobación de OT
}
