package dto

// CreateSupplierRequest body para POST /api/suppliers.
type CreateSupplierRequest struct {
	Company string `json:"empresa"`
	Contact string `json:"contacto,omitempty"`
	Phone   string `json:"telefono,omitempty"`
	Address string `json:"direccion,omitempty"`
	Rubro   string `json:"rubro,omitempty"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID      int64  `json:"id"`
	Company string `json:"empresa"`
	Contact string `json:"contacto,omitempty"`
	Phone   string `json:"telefono,omitempty"`
	Address string `json:"direccion,omitempty"`
	Rubro   string `json:"rubro,omitempty"`
}
