package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/diego1198/inventory-frontend/internal/application/crud"
	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/guard"
	"github.com/diego1198/inventory-frontend/internal/application/resource"
	appsession "github.com/diego1198/inventory-frontend/internal/application/session"
	"github.com/diego1198/inventory-frontend/internal/domain"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/internal/domain/navigation"
)

// CartDropper descarta el carrito de una sesión al cerrarla.
type CartDropper interface {
	Drop(scope string)
}

// AuthHandler maneja login, registro y logout del gateway.
type AuthHandler struct {
	svc      *resource.AuthService
	carts    CartDropper
	route    *guard.RouteGuard
	table    *navigation.Table
	landing  string
	fallback string
	validate *validator.Validate
}

// AuthConfig destinos post-login.
type AuthConfig struct {
	Landing  string // destino por defecto tras el login
	Fallback string // destino si el rol no puede abrir Landing
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(svc *resource.AuthService, carts CartDropper, route *guard.RouteGuard, table *navigation.Table, cfg AuthConfig) *AuthHandler {
	return &AuthHandler{
		svc:      svc,
		carts:    carts,
		route:    route,
		table:    table,
		landing:  cfg.Landing,
		fallback: cfg.Fallback,
		validate: crud.NewValidator(),
	}
}

var loginFields = map[string]crud.Field{
	"email":     {Name: "email", Label: "Email"},
	"password":  {Name: "password", Label: "Contraseña"},
	"firstName": {Name: "firstName", Label: "Nombre"},
	"lastName":  {Name: "lastName", Label: "Apellido"},
	"role":      {Name: "role", Label: "Rol"},
}

// destination destino saneado para role: el redirect pedido, o el landing, o el
// fallback si el rol no puede abrir ninguno de los dos.
func (h *AuthHandler) destination(role entity.Role, requested string) string {
	dest := guard.SafeRedirect(requested, h.landing, h.route)
	if h.table.Allows(role, pathOnly(dest)) {
		return dest
	}
	if h.table.Allows(role, h.landing) {
		return h.landing
	}
	return h.fallback
}

// LoginPage godoc
// @Summary      Página de login
// @Description  Con sesión activa redirige al destino; sin sesión devuelve el destino que se usará tras el login.
// @Tags         auth
// @Produce      json
// @Param        redirect  query  string  false  "Ruta a la que volver"
// @Success      200  {object}  map[string]string
// @Success      302  {string}  string
// @Router       /auth/login [get]
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if sess, ok := GetSession(c); ok && sess.User.Role.Valid() {
		return c.Redirect(h.destination(sess.User.Role, c.Query("redirect")), fiber.StatusFound)
	}
	return c.JSON(fiber.Map{"redirect": guard.SafeRedirect(c.Query("redirect"), h.landing, h.route)})
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body      body   dto.LoginRequest  true   "email, password"
// @Param        redirect  query  string            false  "Ruta a la que volver"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msgs := crud.ValidateStruct(h.validate, in, loginFields); len(msgs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msgs[0], Messages: msgs})
	}
	sess, err := h.svc.Login(c.UserContext(), GetStore(c), in)
	if err != nil {
		return authError(c, err)
	}
	return c.JSON(dto.LoginResponse{User: sess.User, Redirect: h.destination(sess.User.Role, c.Query("redirect"))})
}

// Register godoc
// @Summary      Registrar usuario
// @Description  Si el backend devuelve token la sesión queda iniciada.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, firstName, lastName, role"
// @Success      200   {object}  dto.LoginResponse
// @Success      201   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msgs := crud.ValidateStruct(h.validate, in, loginFields); len(msgs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msgs[0], Messages: msgs})
	}
	sess, err := h.svc.Register(c.UserContext(), GetStore(c), in)
	if err != nil {
		return authError(c, err)
	}
	if sess.Token == "" {
		return c.Status(fiber.StatusCreated).JSON(dto.LoginResponse{User: sess.User, Redirect: guard.LoginPath})
	}
	return c.JSON(dto.LoginResponse{User: sess.User, Redirect: h.destination(sess.User.Role, "")})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Borra las cookies, la caché de la sesión y su carrito.
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if h.carts != nil {
		h.carts.Drop(appsession.Scope(ctx))
	}
	if err := h.svc.Logout(ctx, GetStore(c)); err != nil {
		return respondError(c, err, "Error al cerrar sesión")
	}
	return c.JSON(fiber.Map{"redirect": guard.LoginPath})
}

func authError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "Credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "Cuenta inactiva"})
	default:
		return respondError(c, err, "Error al iniciar sesión")
	}
}

func pathOnly(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		return p[:i]
	}
	return p
}
