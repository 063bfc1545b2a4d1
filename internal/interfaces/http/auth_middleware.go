package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/diego1198/inventory-frontend/internal/application/guard"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	appsession "github.com/diego1198/inventory-frontend/internal/application/session"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/internal/domain/repository"
	"github.com/diego1198/inventory-frontend/internal/infrastructure/session"
	"github.com/diego1198/inventory-frontend/pkg/jwt"
)

// Locals keys del request.
const (
	LocalStore   = "session_store"
	LocalSession = "session"
	localCache   = "query_cache"
)

// SessionMiddleware resuelve la sesión del request desde las cookies o un Bearer
// Token y la deja en c.UserContext() para los servicios. Con jwtSecret el rol sale
// de los claims verificados del token; un token que no verifica cuenta como sin sesión.
func SessionMiddleware(codec *session.CookieCodec, cache *query.Cache, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		store := codec.Store(c)
		c.Locals(LocalStore, store)
		c.Locals(localCache, cache)

		if sess, ok := resolveSession(c, store, jwtSecret); ok {
			c.Locals(LocalSession, sess)
			c.SetUserContext(appsession.WithContext(c.UserContext(), sess))
		}
		return c.Next()
	}
}

func resolveSession(c *fiber.Ctx, store repository.SessionStore, jwtSecret string) (entity.Session, bool) {
	if token := bearerToken(c.Get(fiber.HeaderAuthorization)); token != "" {
		sess := entity.Session{Token: token}
		claims, err := jwt.Parse(jwtSecret, token)
		if err != nil {
			if jwtSecret != "" {
				return entity.Session{}, false
			}
			return sess, true
		}
		sess.User = entity.User{ID: claims.Subject, Email: claims.Email, Role: entity.Role(claims.Role)}
		return sess, true
	}

	stored, ok := store.Get()
	if !ok || stored.Token == "" {
		return entity.Session{}, false
	}
	sess := *stored
	if jwtSecret != "" {
		claims, err := jwt.Parse(jwtSecret, sess.Token)
		if err != nil {
			return entity.Session{}, false
		}
		if claims.Role != "" {
			sess.User.Role = entity.Role(claims.Role)
		}
	}
	return sess, true
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireSession redirige a login (302) las rutas protegidas sin sesión.
func RequireSession(route *guard.RouteGuard) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, _ := GetSession(c)
		d := route.Evaluate(c.Path(), sess.Token)
		if d.State == guard.StateRedirecting {
			return c.Redirect(d.Location, fiber.StatusFound)
		}
		return c.Next()
	}
}

// GetSession devuelve la sesión del request (después de SessionMiddleware).
func GetSession(c *fiber.Ctx) (entity.Session, bool) {
	s, ok := c.Locals(LocalSession).(entity.Session)
	return s, ok
}

// GetRole devuelve el rol de la sesión del request.
func GetRole(c *fiber.Ctx) entity.Role {
	s, _ := GetSession(c)
	return s.User.Role
}

// GetStore devuelve el store de cookies del request.
func GetStore(c *fiber.Ctx) repository.SessionStore {
	if s, ok := c.Locals(LocalStore).(repository.SessionStore); ok {
		return s
	}
	return session.NewMemoryStore()
}

// expireSession descarta la sesión rechazada por el backend: limpia su caché y las cookies.
func expireSession(c *fiber.Ctx) {
	if cache, ok := c.Locals(localCache).(*query.Cache); ok && cache != nil {
		cache.ClearScope(appsession.Scope(c.UserContext()))
	}
	_ = GetStore(c).Clear()
}
