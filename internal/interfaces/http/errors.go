package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/diego1198/inventory-frontend/internal/application/crud"
	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/guard"
	"github.com/diego1198/inventory-frontend/internal/domain"
)

// respondError traduce un error de la aplicación a status + dto.ErrorResponse.
// Un 401 del backend cierra la sesión local y redirige a login.
func respondError(c *fiber.Ctx, err error, fallback string) error {
	n := crud.NoticeFromError(err, fallback)
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNetwork):
		status, code = fiber.StatusBadGateway, "UPSTREAM_UNAVAILABLE"
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNoSession):
		expireSession(c)
		c.Location(guard.LoginRedirect(c.Path()))
		status, code = fiber.StatusUnauthorized, "SESSION_EXPIRED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: n.Message, Messages: n.Messages})
}

// respondNotice responde un aviso de página. ok es el status de éxito (200 o 201).
func respondNotice(c *fiber.Ctx, n dto.Notice, ok int) error {
	switch n.Level {
	case dto.NoticeSuccess:
		return c.Status(ok).JSON(n)
	case dto.NoticeConfirm:
		return c.Status(fiber.StatusPreconditionRequired).JSON(n)
	case dto.NoticeWarning:
		if n.Message == crud.SessionMessage {
			expireSession(c)
			c.Location(guard.LoginRedirect(c.Path()))
			return c.Status(fiber.StatusUnauthorized).JSON(n)
		}
		return c.Status(fiber.StatusForbidden).JSON(n)
	default:
		if n.Message == crud.NetworkMessage {
			return c.Status(fiber.StatusBadGateway).JSON(n)
		}
		return c.Status(fiber.StatusBadRequest).JSON(n)
	}
}

// respondView responde una vista de página: 200 aunque la carga falle, con el aviso adentro.
// Solo una sesión expirada cambia el status.
func respondView(c *fiber.Ctx, view any, notice *dto.Notice) error {
	if notice != nil && notice.Message == crud.SessionMessage {
		return respondNotice(c, *notice, fiber.StatusOK)
	}
	return c.JSON(view)
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
