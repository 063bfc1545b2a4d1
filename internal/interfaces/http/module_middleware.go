package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/guard"
)

// HeaderWarning aviso para el cliente cuando una página lo redirige. El texto va
// escapado como componente de URL porque los headers no admiten UTF-8.
const HeaderWarning = "X-Warning"

// RequirePage aplica la tabla de navegación. Debe usarse DESPUÉS de SessionMiddleware.
//
// Comportamiento:
//   - rol desconocido → 302 a login.
//   - rol sin permiso → 303 al fallback con X-Warning y el aviso en JSON.
func RequirePage(pg *guard.PageGuard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := pg.Check(GetRole(c), c.Path())
		if v.Allowed {
			return c.Next()
		}
		if v.Warning == "" {
			return c.Redirect(v.Location, fiber.StatusFound)
		}
		c.Set(HeaderWarning, url.PathEscape(v.Warning))
		c.Location(v.Location)
		return c.Status(fiber.StatusSeeOther).JSON(dto.Notice{Level: dto.NoticeWarning, Message: v.Warning})
	}
}
