package resource

import (
	"context"
	"fmt"
	"net/http"

	"github.com/diego1198/inventory-frontend/internal/application/dto"
	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/application/session"
	"github.com/diego1198/inventory-frontend/internal/domain"
	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/internal/domain/repository"
)

// AuthService login, registro y logout contra el backend.
type AuthService struct {
	backend Backend
	cache   *query.Cache
}

// NewAuthService construye el servicio.
func NewAuthService(b Backend, c *query.Cache) *AuthService {
	return &AuthService{backend: b, cache: c}
}

// Login intercambia credenciales por un token y lo guarda en store.
func (s *AuthService) Login(ctx context.Context, store repository.SessionStore, in dto.LoginRequest) (entity.Session, error) {
	var out dto.AuthResponse
	if err := s.backend.Do(ctx, http.MethodPost, "/auth/login", nil, in, &out); err != nil {
		return entity.Session{}, fmt.Errorf("auth: login: %w", err)
	}
	return s.persist(store, out)
}

// Register da de alta un usuario. Si el backend devuelve token, inicia sesión.
func (s *AuthService) Register(ctx context.Context, store repository.SessionStore, in dto.RegisterRequest) (entity.Session, error) {
	var out dto.AuthResponse
	if err := s.backend.Do(ctx, http.MethodPost, "/auth/register", nil, in, &out); err != nil {
		return entity.Session{}, fmt.Errorf("auth: registro: %w", err)
	}
	if out.AccessToken == "" {
		return entity.Session{User: out.User}, nil
	}
	return s.persist(store, out)
}

func (s *AuthService) persist(store repository.SessionStore, out dto.AuthResponse) (entity.Session, error) {
	if out.AccessToken == "" {
		return entity.Session{}, fmt.Errorf("auth: respuesta sin access_token: %w", domain.ErrUnauthorized)
	}
	sess := entity.Session{Token: out.AccessToken, User: out.User}
	if err := store.Set(sess); err != nil {
		return entity.Session{}, fmt.Errorf("auth: guardar sesión: %w", err)
	}
	return sess, nil
}

// Logout borra la sesión del store y descarta todas las lecturas cacheadas de esa sesión.
func (s *AuthService) Logout(ctx context.Context, store repository.SessionStore) error {
	scope := session.Scope(ctx)
	if scope == "" {
		if cur, ok := store.Get(); ok {
			scope = cur.Scope()
		}
	}
	if scope != "" {
		s.cache.ClearScope(scope)
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("auth: logout: %w", err)
	}
	return nil
}
