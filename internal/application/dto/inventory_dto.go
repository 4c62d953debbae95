package dto

import "github.com/shopspring/decimal"

// CreateStockItemRequest body para POST /api/stock.
type CreateStockItemRequest struct {
	Name      string           `json:"nombre"`
	Code      string           `json:"codigo,omitempty"`
	Rubro     string           `json:"rubro,omitempty"`
	Quantity  int64            `json:"cantidad"`
	Minimum   int64            `json:"minimo"`
	UnitPrice *decimal.Decimal `json:"precio_unitario,omitempty"`
	Supplier  string           `json:"proveedor,omitempty"`
}

// StockItemResponse artículo del pañol en respuestas.
type StockItemResponse struct {
	ID        int64            `json:"id"`
	Name      string           `json:"nombre"`
	Code      string           `json:"codigo,omitempty"`
	Rubro     string           `json:"rubro,omitempty"`
	Quantity  int64            `json:"cantidad"`
	Minimum   int64            `json:"minimo"`
	UnitPrice *decimal.Decimal `json:"precio_unitario,omitempty"`
	Supplier  string           `json:"proveedor,omitempty"`
	LowStock  bool             `json:"stock_bajo"`
}

// StockEntryRequest body para POST /api/stock/:id/entries.
type StockEntryRequest struct {
	Quantity  int64            `json:"cantidad"`
	UnitPrice *decimal.Decimal `json:"precio_unitario,omitempty"`
	Supplier  string           `json:"proveedor,omitempty"`
	Receipt   string           `json:"remito,omitempty"`
}

// StockExitRequest body para POST /api/stock/:id/exits.
// El destino es un móvil (VehicleID) o un destino interno libre.
type StockExitRequest struct {
	Quantity    int64  `json:"cantidad"`
	VehicleID   *int64 `json:"vehiculo_id,omitempty"`
	Destination string `json:"destino,omitempty"`
	Responsible string `json:"responsable"`
}

// MovementResponse asiento del kardex.
type MovementResponse struct {
	TransactionID string           `json:"transaccion"`
	StockItemID   int64            `json:"repuesto_id"`
	ItemName      string           `json:"repuesto,omitempty"`
	Type          string           `json:"tipo"`
	Quantity      int64            `json:"cantidad"`
	WorkOrderID   *int64           `json:"ot_id,omitempty"`
	Destination   string           `json:"destino,omitempty"`
	Supplier      string           `json:"proveedor,omitempty"`
	Receipt       string           `json:"remito,omitempty"`
	UnitPrice     *decimal.Decimal `json:"precio_unitario,omitempty"`
	User          string           `json:"usuario,omitempty"`
	CreatedAt     string           `json:"fecha"`
}

// StockValuationDTO valorización total del pañol.
type StockValuationDTO struct {
	Items      int             `json:"articulos"`
	Units      int64           `json:"unidades"`
	TotalValue decimal.Decimal `json:"valor_total"`
}
