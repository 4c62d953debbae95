package entity

// Supplier representa un proveedor o taller externo.
// Puede crearse ad hoc desde el formulario de OT con solo el nombre.
type Supplier struct {
	ID      int64
	Company string
	Contact string
	Phone   string
	Address string
	Rubro   string
}
