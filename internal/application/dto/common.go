package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// IDResponse respuesta mínima de alta: el identificador creado.
type IDResponse struct {
	ID int64 `json:"id"`
}

// ConfirmRequest query para bajas en dos pasos. El primer intento sin
// confirmar devuelve 409 con el resumen de lo que se va a borrar.
type ConfirmRequest struct {
	Confirm bool `query:"confirm"`
}
