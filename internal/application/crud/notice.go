package crud

import (
	"errors"

	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/domain"
)

// Mensajes comunes.
const (
	NetworkMessage   = "Error de conexión. Verifica tu conexión a internet."
	ForbiddenMessage = "No tienes permisos para acceder a esta página"
	SessionMessage   = "Tu sesión expiró. Inicia sesión nuevamente."
)

type userMessages interface {
	UserMessages() []string
}

// NoticeFromError traduce un error a un aviso: red -> mensaje de conexión,
// validación o conflicto -> cada mensaje del backend, autorización -> aviso de
// permisos, resto -> fallback.
func NoticeFromError(err error, fallback string) dto.Notice {
	switch {
	case err == nil:
		return dto.SuccessNotice(fallback)
	case errors.Is(err, domain.ErrNetwork):
		return dto.ErrorNotice(NetworkMessage)
	case errors.Is(err, domain.ErrUnauthorized):
		return dto.Notice{Level: dto.NoticeWarning, Message: SessionMessage}
	case errors.Is(err, domain.ErrForbidden):
		return dto.Notice{Level: dto.NoticeWarning, Message: ForbiddenMessage}
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		var um userMessages
		if errors.As(err, &um) && len(um.UserMessages()) > 0 {
			return dto.ErrorNotice(um.UserMessages()...)
		}
		return dto.ErrorNotice(fallback)
	default:
		return dto.ErrorNotice(fallback)
	}
}
