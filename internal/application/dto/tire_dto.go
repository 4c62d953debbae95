package dto

// CreateTireLotRequest body para POST /api/tires.
type CreateTireLotRequest struct {
	Brand    string `json:"marca,omitempty"`
	Model    string `json:"modelo,omitempty"`
	Size     string `json:"medida"`
	DOT      string `json:"dot,omitempty"`
	Cond     string `json:"condicion"`
	Quantity int64  `json:"cantidad"`
	Location string `json:"ubicacion,omitempty"`
}

// TireLotResponse lote de cubiertas en respuestas.
type TireLotResponse struct {
	ID       int64  `json:"id"`
	Brand    string `json:"marca,omitempty"`
	Model    string `json:"modelo,omitempty"`
	Size     string `json:"medida"`
	DOT      string `json:"dot,omitempty"`
	Cond     string `json:"condicion"`
	Quantity int64  `json:"cantidad"`
	Location string `json:"ubicacion,omitempty"`
}
