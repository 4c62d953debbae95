package entity

// Estados de cubierta.
const (
	TireNew      = "Nueva"
	TireRetread  = "Recapada"
	TireUsed     = "Usada"
)

// CommonTireSizes son las medidas habituales de la flota; el alta acepta
// también texto libre.
var CommonTireSizes = []string{
	"295/80 R22.5",
	"275/80 R22.5",
	"11 R22.5",
	"315/80 R22.5",
	"12 R22.5",
	"385/65 R22.5",
}

// TireLot es un lote de cubiertas (no se serializa por unidad).
type TireLot struct {
	ID       int64
	Brand    string
	Model    string
	Size     string
	DOT      string // año/semana, opcional
	Cond     string
	Quantity int64
	Location string
}

// ValidTireCondition indica si el estado pertenece al conjunto cerrado.
func ValidTireCondition(c string) bool {
	switch c {
	case TireNew, TireRetread, TireUsed:
		return true
	}
	return false
}
