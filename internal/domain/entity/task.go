package entity

// Task es una entrada canónica del catálogo de tareas: el nombre
// deduplicado al que resuelve cualquier texto libre equivalente.
type Task struct {
	ID     int64
	Name   string
	Active bool
}

// TaskAlias mapea una forma normalizada ya vista a su tarea canónica.
// Normalized tiene restricción de unicidad para que dos resoluciones
// concurrentes del mismo texto no dupliquen el catálogo.
type TaskAlias struct {
	ID         int64
	Normalized string
	TaskID     int64
}
