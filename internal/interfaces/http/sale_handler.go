package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/diego1198/inventory-frontend/internal/application/checkout"
	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/pages"
	"github.com/diego1198/inventory-frontend/internal/application/resource"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/pkg/logger"
)

// ReceiptRenderer genera el PDF de una venta.
type ReceiptRenderer interface {
	GenerateSaleReceipt(ctx context.Context, sale entity.Sale) ([]byte, error)
}

// SaleHandler historial de ventas, carrito de "Nueva factura" y comprobantes.
type SaleHandler struct {
	page     *pages.SalePage
	sales    *resource.SaleService
	carts    *checkout.Carts
	receipts ReceiptRenderer
	log      *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(page *pages.SalePage, sales *resource.SaleService, carts *checkout.Carts, receipts ReceiptRenderer, log *logger.Logger) *SaleHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &SaleHandler{page: page, sales: sales, carts: carts, receipts: receipts, log: log.Component("sales")}
}

// CheckoutResponse venta registrada.
type CheckoutResponse struct {
	Sale   entity.Sale `json:"sale"`
	Notice dto.Notice  `json:"notice"`
}

// List godoc
// @Summary      Historial de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Factura o cliente"
// @Success      200  {object}  any
// @Router       /sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	view := h.page.View(c.UserContext(), c.Query("q"))
	return respondView(c, view, view.Notice)
}

// GetByID godoc
// @Summary      Detalle de venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  entity.Sale
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.sales.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error al cargar la venta")
	}
	return c.JSON(sale)
}

// Receipt godoc
// @Summary      Comprobante PDF de la venta
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /sales/{id}/receipt.pdf [get]
func (h *SaleHandler) Receipt(c *fiber.Ctx) error {
	if h.receipts == nil {
		return c.Status(fiber.StatusNotImplemented).JSON(dto.ErrorResponse{Code: "PDF_DISABLED", Message: "Comprobantes no disponibles"})
	}
	ctx := c.UserContext()
	sale, err := h.sales.Get(ctx, c.Params("id"))
	if err != nil {
		return respondError(c, err, "Error al cargar la venta")
	}
	doc, err := h.receipts.GenerateSaleReceipt(ctx, sale)
	if err != nil {
		h.log.Error().Err(err).Str("sale_id", sale.ID).Msg("generar comprobante")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_FAILED", Message: "No se pudo generar el comprobante"})
	}
	name := sale.InvoiceNumber
	if name == "" {
		name = sale.ID
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("inline; filename=%q", "comprobante-"+name+".pdf"))
	return c.Send(doc)
}

// Cart godoc
// @Summary      Carrito de la nueva factura
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  checkout.View
// @Router       /sales/new [get]
func (h *SaleHandler) Cart(c *fiber.Ctx) error {
	return h.cartResponse(c)(h.carts.Get(c.UserContext()))
}

// AddItem godoc
// @Summary      Agregar producto al carrito
// @Description  Si el producto ya está, suma la cantidad (0 = 1).
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddCartItemRequest  true  "productId, quantity"
// @Success      200  {object}  checkout.View
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /sales/new/items [post]
func (h *SaleHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "Selecciona un producto"})
	}
	return h.cartResponse(c)(h.carts.Add(c.UserContext(), in))
}

// UpdateItem godoc
// @Summary      Cambiar cantidad de una línea
// @Description  Cantidad <= 0 quita la línea.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        index  path  int                        true  "Posición de la línea"
// @Param        body   body  dto.UpdateCartItemRequest  true  "quantity"
// @Success      200  {object}  checkout.View
// @Router       /sales/new/items/{index} [patch]
func (h *SaleHandler) UpdateItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "índice inválido"})
	}
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	return h.cartResponse(c)(h.carts.Update(c.UserContext(), index, in.Quantity))
}

// RemoveItem quita una línea del carrito.
func (h *SaleHandler) RemoveItem(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INDEX", Message: "índice inválido"})
	}
	return h.cartResponse(c)(h.carts.Remove(c.UserContext(), index))
}

// CancelCart vacía el carrito.
func (h *SaleHandler) CancelCart(c *fiber.Ctx) error {
	return h.cartResponse(c)(h.carts.Cancel(c.UserContext()))
}

// Checkout godoc
// @Summary      Confirmar la venta
// @Description  Envía las líneas del carrito a POST /sales; los totales definitivos los calcula el backend.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  false  "notes, customerId"
// @Success      201  {object}  CheckoutResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /sales/new/checkout [post]
func (h *SaleHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	sale, err := h.carts.Checkout(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "Error al registrar la venta")
	}
	h.log.Info().Str("sale_id", sale.ID).Str("invoice", sale.InvoiceNumber).Msg("venta registrada")
	return c.Status(fiber.StatusCreated).JSON(CheckoutResponse{Sale: sale, Notice: dto.SuccessNotice("Venta registrada exitosamente")})
}

func (h *SaleHandler) cartResponse(c *fiber.Ctx) func(checkout.View, error) error {
	return func(v checkout.View, err error) error {
		if err != nil {
			return respondError(c, err, "Error al actualizar el carrito")
		}
		return c.JSON(v)
	}
}
