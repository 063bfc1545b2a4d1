package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	ErrValidation   = errors.New("datos inválidos")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrNetwork      = errors.New("error de conexión con el backend")
	ErrNoSession    = errors.New("sesión no iniciada")
)

// ValidationError error de validación local con uno o más mensajes para el usuario.
type ValidationError struct {
	Messages []string
}

// NewValidationError crea un error de validación con los mensajes dados.
func NewValidationError(msgs ...string) *ValidationError {
	return &ValidationError{Messages: msgs}
}

func (e *ValidationError) Error() string {
	if len(e.Messages) == 0 {
		return ErrValidation.Error()
	}
	return e.Messages[0]
}

// Unwrap permite errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error { return ErrValidation }

// UserMessages mensajes para mostrar al usuario.
func (e *ValidationError) UserMessages() []string { return e.Messages }
