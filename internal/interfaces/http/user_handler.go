package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diego1198/inventory-frontend/internal/application/pages"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

// RoleOption opción del select de rol.
type RoleOption struct {
	Value entity.Role `json:"value"`
	Label string      `json:"label"`
}

// Roles godoc
// @Summary      Roles que la sesión puede asignar
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  RoleOption
// @Router       /users/roles [get]
func Roles(c *fiber.Ctx) error {
	roles := pages.RoleOptions(c.UserContext())
	out := make([]RoleOption, 0, len(roles))
	for _, r := range roles {
		out = append(out, RoleOption{Value: r, Label: r.Label()})
	}
	return c.JSON(out)
}
