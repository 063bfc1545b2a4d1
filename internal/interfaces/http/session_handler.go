package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/domain/navigation"
)

// SessionHandler identidad y menú de la sesión actual.
type SessionHandler struct {
	table *navigation.Table
}

// NewSessionHandler construye el handler.
func NewSessionHandler(table *navigation.Table) *SessionHandler {
	return &SessionHandler{table: table}
}

// Me godoc
// @Summary      Usuario de la sesión
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MeResponse
// @Router       /me [get]
func (h *SessionHandler) Me(c *fiber.Ctx) error {
	sess, _ := GetSession(c)
	return c.JSON(dto.MeResponse{User: sess.User, RoleLabel: sess.User.Role.Label()})
}

// Navigation godoc
// @Summary      Menú visible para el rol de la sesión
// @Tags         session
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  navigation.Item
// @Router       /navigation [get]
func (h *SessionHandler) Navigation(c *fiber.Ctx) error {
	return c.JSON(h.table.VisibleItems(GetRole(c)))
}
