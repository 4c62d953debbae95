package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrOdometerRollback   = errors.New("el kilometraje ingresado es menor al actual")
	ErrMissingWorkshop    = errors.New("taller externo sin proveedor especificado")
	ErrEmptyTaskList      = errors.New("la orden no tiene tareas")
	ErrAlreadyClosed      = errors.New("la orden ya está cerrada")
	ErrRequestResolved    = errors.New("la solicitud de repuestos ya fue resuelta")
	ErrConfirmationNeeded = errors.New("operación destructiva sin confirmar")
)
