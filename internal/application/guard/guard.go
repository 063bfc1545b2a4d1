// Package guard decide qué puede abrir un visitante: el guard de ruta exige
// sesión fuera de la lista pública y el guard de página aplica la tabla de navegación.
package guard

import (
	"net/url"
	"strings"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/internal/domain/navigation"
)

// LoginPath página de login.
const LoginPath = "/auth/login"

// ForbiddenMessage aviso cuando el rol no alcanza para la página.
const ForbiddenMessage = "No tienes permisos para acceder a esta página"

// DefaultPublicPaths rutas que no exigen sesión (coincidencia por prefijo de segmento).
var DefaultPublicPaths = []string{
	LoginPath,
	"/auth/register",
	"/health",
	"/metrics",
	"/docs",
	"/static",
	"/favicon.ico",
}

// State estado del guard de ruta.
type State string

const (
	StatePublic      State = "public"
	StateChecking    State = "checking"
	StateAuthorized  State = "authorized"
	StateRedirecting State = "redirecting"
)

// Decision resultado de evaluar una ruta.
type Decision struct {
	State    State
	Location string // destino cuando State == StateRedirecting
}

// RouteGuard exige token para toda ruta fuera de la lista pública. No valida el
// token: la expiración se descubre cuando el backend lo rechaza.
type RouteGuard struct {
	public []string
}

// NewRouteGuard crea el guard. Sin rutas usa DefaultPublicPaths.
func NewRouteGuard(public ...string) *RouteGuard {
	if len(public) == 0 {
		public = DefaultPublicPaths
	}
	return &RouteGuard{public: append([]string(nil), public...)}
}

// IsPublic indica si path está en la lista pública.
func (g *RouteGuard) IsPublic(path string) bool {
	for _, p := range g.public {
		if path == p || strings.HasPrefix(path, strings.TrimRight(p, "/")+"/") {
			return true
		}
	}
	return false
}

// Evaluate decide para path con el token dado ("" = sin sesión).
func (g *RouteGuard) Evaluate(path, token string) Decision {
	if g.IsPublic(path) {
		return Decision{State: StatePublic}
	}
	if token == "" {
		return Decision{State: StateRedirecting, Location: LoginRedirect(path)}
	}
	return Decision{State: StateAuthorized}
}

// LoginRedirect URL de login que vuelve a path tras autenticarse.
func LoginRedirect(path string) string {
	if path == "" {
		path = "/"
	}
	return LoginPath + "?redirect=" + url.QueryEscape(path)
}

// Verdict resultado del guard de página.
type Verdict struct {
	Allowed  bool
	Location string
	Warning  string
}

// PageGuard aplica la tabla de navegación a una ruta protegida.
type PageGuard struct {
	table    *navigation.Table
	route    *RouteGuard
	fallback string
}

// NewPageGuard crea el guard. fallback es el destino cuando el rol no alcanza.
func NewPageGuard(table *navigation.Table, route *RouteGuard, fallback string) *PageGuard {
	return &PageGuard{table: table, route: route, fallback: fallback}
}

// Check decide si role puede abrir path. Un rol desconocido manda a login; un rol
// sin permiso manda al fallback con aviso. Rutas públicas siempre pasan.
func (g *PageGuard) Check(role entity.Role, path string) Verdict {
	if g.route.IsPublic(path) {
		return Verdict{Allowed: true}
	}
	if !role.Valid() {
		return Verdict{Location: LoginRedirect(path)}
	}
	if g.table.Allows(role, path) {
		return Verdict{Allowed: true}
	}
	if path == g.fallback || !g.table.Allows(role, g.fallback) {
		// el fallback tampoco es accesible: evitar un bucle de redirecciones
		return Verdict{Location: LoginRedirect(path), Warning: ForbiddenMessage}
	}
	return Verdict{Location: g.fallback, Warning: ForbiddenMessage}
}

// SafeRedirect valida el destino post-login: debe ser una ruta local absoluta
// ("/x", no "//x" ni con esquema) y no una página pública de auth.
func SafeRedirect(target, fallback string, route *RouteGuard) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.HasPrefix(target, "/\\") {
		return fallback
	}
	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	if route != nil && route.IsPublic(u.Path) {
		return fallback
	}
	return target
}
