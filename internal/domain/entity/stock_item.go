package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem representa un artículo del pañol de repuestos.
// Minimum en 0 significa "sin mínimo configurado": el artículo nunca se
// marca como bajo stock por defecto de columna.
type StockItem struct {
	ID         int64
	Code       string
	Name       string
	Quantity   int64
	Minimum    int64
	UnitPrice  decimal.NullDecimal
	Rubro      string
	Supplier   string
	ReceivedAt *time.Time
}

// LowStock indica si el artículo está en o por debajo del mínimo.
// Un mínimo de 0 desactiva el control.
func (s *StockItem) LowStock() bool {
	return s.Minimum > 0 && s.Quantity <= s.Minimum
}

// Value devuelve cantidad × precio unitario; precio nulo vale cero.
func (s *StockItem) Value() decimal.Decimal {
	if !s.UnitPrice.Valid {
		return decimal.Zero
	}
	return s.UnitPrice.Decimal.Mul(decimal.NewFromInt(s.Quantity))
}
