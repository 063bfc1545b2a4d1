package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/diego1198/inventory-frontend/internal/application/crud"
	"github.com/diego1198/inventory-frontend/internal/application/dto"
)

// PageHandler expone una página CRUD (productos, categorías, clientes, usuarios).
type PageHandler[T, C, U any] struct {
	page *crud.Controller[T, C, U]
}

// NewPageHandler construye el handler.
func NewPageHandler[T, C, U any](page *crud.Controller[T, C, U]) *PageHandler[T, C, U] {
	return &PageHandler[T, C, U]{page: page}
}

// Mount registra las rutas de la página en r:
//
//	GET    /           listado (?q= búsqueda)
//	GET    /new        formulario de alta
//	GET    /:id/edit   formulario de edición
//	POST   /           alta
//	PATCH  /:id        edición
//	DELETE /:id        baja (?confirm=true)
func (h *PageHandler[T, C, U]) Mount(r fiber.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.New)
	r.Get("/:id/edit", h.Edit)
	r.Post("/", h.Create)
	r.Patch("/:id", h.Update)
	r.Delete("/:id", h.Delete)
}

// List godoc
// @Summary      Listado de la página con búsqueda sin tildes ni mayúsculas
// @Security     Bearer
// @Produce      json
// @Param        q    query     string  false  "Término de búsqueda"
// @Success      200  {object}  any
// @Failure      302  {string}  string  "sin sesión: /auth/login?redirect="
// @Failure      303  {object}  dto.Notice
func (h *PageHandler[T, C, U]) List(c *fiber.Ctx) error {
	view := h.page.View(c.UserContext(), c.Query("q"))
	return respondView(c, view, view.Notice)
}

// New formulario vacío.
func (h *PageHandler[T, C, U]) New(c *fiber.Ctx) error {
	return c.JSON(h.page.NewForm())
}

// Edit formulario precargado; los campos bloqueados vienen en "locked".
func (h *PageHandler[T, C, U]) Edit(c *fiber.Ctx) error {
	form, err := h.page.EditForm(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "No se pudo cargar el registro")
	}
	return c.JSON(form)
}

// Create godoc
// @Summary      Alta
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Success      201  {object}  dto.Notice
// @Failure      400  {object}  dto.Notice
func (h *PageHandler[T, C, U]) Create(c *fiber.Ctx) error {
	return respondNotice(c, h.page.Submit(c.UserContext(), "", c.Body()), fiber.StatusCreated)
}

// Update edición parcial.
func (h *PageHandler[T, C, U]) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	return respondNotice(c, h.page.Submit(c.UserContext(), id, c.Body()), fiber.StatusOK)
}

// Delete godoc
// @Summary      Baja con confirmación
// @Description  Sin confirm=true responde 428 con el texto de confirmación y no llama al backend.
// @Security     Bearer
// @Produce      json
// @Param        id       path   string  true   "ID"
// @Param        confirm  query  bool    false  "Confirmación del usuario"
// @Success      200  {object}  dto.Notice
// @Failure      428  {object}  dto.Notice
func (h *PageHandler[T, C, U]) Delete(c *fiber.Ctx) error {
	n := h.page.Delete(c.UserContext(), c.Params("id"), c.QueryBool("confirm"))
	return respondNotice(c, n, fiber.StatusOK)
}
