package sqlite

import "strings"

// isUniqueViolation verifica si un error es una violación de unicidad.
// El driver no expone un código tipado para esto, solo el mensaje.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
