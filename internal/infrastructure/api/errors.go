package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/diego1198/inventory-frontend/internal/domain"
)

// Error respuesta HTTP >= 400 del backend.
type Error struct {
	Status   int
	Path     string
	Messages []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Path, strings.Join(e.Messages, "; "))
}

// Unwrap permite errors.Is contra los errores de dominio.
func (e *Error) Unwrap() error {
	switch {
	case e.Status == http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case e.Status == http.StatusForbidden:
		return domain.ErrForbidden
	case e.Status == http.StatusNotFound:
		return domain.ErrNotFound
	case e.Status == http.StatusConflict:
		return domain.ErrConflict
	case e.Status == http.StatusBadRequest || e.Status == http.StatusUnprocessableEntity:
		return domain.ErrValidation
	default:
		return nil
	}
}

// UserMessages mensajes del backend para mostrar al usuario, uno por entrada.
func (e *Error) UserMessages() []string {
	return e.Messages
}

// errorBody forma de error de NestJS: message puede ser string o []string.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

func parseError(status int, path string, body []byte) *Error {
	e := &Error{Status: status, Path: path}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		e.Messages = decodeMessages(eb.Message)
		if len(e.Messages) == 0 && eb.Error != "" {
			e.Messages = []string{eb.Error}
		}
	}
	if len(e.Messages) == 0 {
		e.Messages = []string{http.StatusText(status)}
	}
	return e
}

func decodeMessages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		if one == "" {
			return nil
		}
		return []string{one}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		out := many[:0]
		for _, m := range many {
			if m != "" {
				out = append(out, m)
			}
		}
		return out
	}
	return nil
}
