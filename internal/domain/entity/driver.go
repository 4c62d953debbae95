package entity

// Estados de chofer.
const (
	DriverActive   = "Activo"
	DriverInactive = "Inactivo"
)

// Driver representa un chofer del directorio. Name es único.
type Driver struct {
	ID     int64
	Name   string
	DNI    string
	Phone  string
	Status string
}
