package domain

import "net/http"

// ValidationError es la respuesta estructurada que se devuelve con 422.
// Siempre identifica un único campo inválido (Location).
type ValidationError struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

// NewValidationError crea un ValidationError para el campo indicado
func NewValidationError(location, message string) *ValidationError {
	return &ValidationError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   "ValidationError",
		Message:  message,
		Location: location,
	}
}

// Error implementa la interfaz error
func (e *ValidationError) Error() string {
	return e.Location + ": " + e.Message
}
