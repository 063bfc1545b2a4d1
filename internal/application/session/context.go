// Package session transporta la sesión autenticada en context.Context.
// El gateway la inyecta por request; el resto de la aplicación solo la lee de aquí.
package session

import (
	"context"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
)

type ctxKey struct{}

// WithContext devuelve un contexto hijo que transporta s.
func WithContext(ctx context.Context, s entity.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext devuelve la sesión del contexto, si existe y tiene token.
func FromContext(ctx context.Context) (entity.Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(entity.Session)
	if !ok || s.Token == "" {
		return entity.Session{}, false
	}
	return s, true
}

// Scope devuelve el scope de caché de la sesión del contexto ("" si no hay sesión).
func Scope(ctx context.Context) string {
	s, _ := FromContext(ctx)
	return s.Scope()
}

// Role devuelve el rol del usuario de la sesión del contexto.
func Role(ctx context.Context) entity.Role {
	s, _ := FromContext(ctx)
	return s.User.Role
}
