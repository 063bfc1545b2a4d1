package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diego1198/inventory-frontend/internal/application/pages"
	"github.com/diego1198/inventory-frontend/internal/application/resource"
)

// InventoryHandler maneja los movimientos de inventario (protegido).
type InventoryHandler struct {
	page      *pages.MovementPage
	inventory *resource.InventoryService
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(page *pages.MovementPage, inventory *resource.InventoryService) *InventoryHandler {
	return &InventoryHandler{page: page, inventory: inventory}
}

// List godoc
// @Summary      Movimientos de inventario
// @Description  Con productId lista solo los movimientos de ese producto; sin él, todos (?q= filtra).
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  query  string  false  "ID del producto"
// @Param        q          query  string  false  "Búsqueda"
// @Success      200  {object}  any
// @Router       /inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	ctx := c.UserContext()
	productID := c.Query("productId")
	if productID == "" {
		view := h.page.View(ctx, c.Query("q"))
		return respondView(c, view, view.Notice)
	}
	items, err := h.inventory.ListMovements(ctx, productID)
	if err != nil {
		return respondError(c, err, "Error al cargar movimientos")
	}
	return c.JSON(fiber.Map{"productId": productID, "items": items, "total": len(items)})
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de inventario
// @Description  IN exige unitPrice; en OUT se descarta. Stock y costo promedio los recalcula el backend.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "productId, type (IN|OUT), quantity, unitPrice, reason"
// @Success      201   {object}  dto.Notice
// @Failure      400   {object}  dto.Notice
// @Router       /inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	return respondNotice(c, h.page.Submit(c.UserContext(), "", c.Body()), fiber.StatusCreated)
}
