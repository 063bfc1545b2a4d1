package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/internal/domain/navigation"
)

func TestEvaluate_SinSesionRedirigeALogin(t *testing.T) {
	g := NewRouteGuard()

	d := g.Evaluate("/products", "")
	assert.Equal(t, StateRedirecting, d.State)
	assert.Equal(t, "/auth/login?redirect=%2Fproducts", d.Location)
}

func TestEvaluate_ConSesionAutoriza(t *testing.T) {
	d := NewRouteGuard().Evaluate("/products", "tok")
	assert.Equal(t, Decision{State: StateAuthorized}, d)
}

func TestEvaluate_RutasPublicas(t *testing.T) {
	g := NewRouteGuard()
	for _, p := range []string{"/auth/login", "/auth/register", "/health", "/metrics", "/docs/index.html", "/static/app.css", "/favicon.ico"} {
		assert.Equal(t, StatePublic, g.Evaluate(p, "").State, p)
	}
	assert.Equal(t, StateRedirecting, g.Evaluate("/auth/logout", "").State)
	assert.Equal(t, StateRedirecting, g.Evaluate("/healthz", "").State, "prefijo por segmento")
}

func TestLoginRedirect_CodificaRutaAnidada(t *testing.T) {
	assert.Equal(t, "/auth/login?redirect=%2Fsales%2Fnew", LoginRedirect("/sales/new"))
}

func newPageGuard() *PageGuard {
	return NewPageGuard(navigation.DefaultTable(), NewRouteGuard(), "/products")
}

func TestCheck_RolSinPermisoVaAlFallbackConAviso(t *testing.T) {
	v := newPageGuard().Check(entity.RoleCashier, "/categories")
	assert.False(t, v.Allowed)
	assert.Equal(t, "/products", v.Location)
	assert.Equal(t, ForbiddenMessage, v.Warning)
}

func TestCheck_RolPermitido(t *testing.T) {
	g := newPageGuard()
	assert.True(t, g.Check(entity.RoleSuperadmin, "/categories").Allowed)
	assert.True(t, g.Check(entity.RoleAdmin, "/reports").Allowed)
	assert.True(t, g.Check(entity.RoleCashier, "/sales/new").Allowed)
	assert.True(t, g.Check(entity.RoleCashier, "/me").Allowed, "ruta sin ítem")
}

func TestCheck_RolDesconocidoVaALogin(t *testing.T) {
	v := newPageGuard().Check(entity.Role("vendedor"), "/products")
	assert.False(t, v.Allowed)
	assert.Equal(t, "/auth/login?redirect=%2Fproducts", v.Location)
}

func TestCheck_RutaPublicaSiemprePasa(t *testing.T) {
	assert.True(t, newPageGuard().Check("", "/auth/login").Allowed)
}

func TestCheck_FallbackInaccesibleNoHaceBucle(t *testing.T) {
	g := NewPageGuard(navigation.DefaultTable(), NewRouteGuard(), "/reports")
	v := g.Check(entity.RoleCashier, "/users")
	assert.False(t, v.Allowed)
	assert.Contains(t, v.Location, "/auth/login")
}

func TestSafeRedirect(t *testing.T) {
	g := NewRouteGuard()
	cases := map[string]string{
		"":                       "/reports",
		"/products":              "/products",
		"/sales/new?x=1":         "/sales/new?x=1",
		"//evil.com":             "/reports",
		"/\\evil.com":            "/reports",
		"https://evil.com/x":     "/reports",
		"products":               "/reports",
		"/auth/login":            "/reports",
		"/auth/register?next=/x": "/reports",
	}
	for in, want := range cases {
		assert.Equal(t, want, SafeRedirect(in, "/reports", g), in)
	}
}
