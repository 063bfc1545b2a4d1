// Package resource agrupa los servicios de lectura/escritura por recurso del backend.
// Las lecturas pasan por la caché compartida; cada escritura exitosa invalida
// los recursos afectados.
package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/diego1198/inventory-frontend/internal/application/query"
	"github.com/diego1198/inventory-frontend/internal/application/session"
)

// Nombres de recurso usados como prefijo de las claves de caché.
const (
	Products   = "products"
	Categories = "categories"
	Customers  = "customers"
	Users      = "users"
	Movements  = "inventory-movements"
	Sales      = "sales"
	Reports    = "reports"
)

// Backend puerto hacia el cliente HTTP del backend (lo implementa *api.Client).
type Backend interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Config describe una colección REST.
type Config struct {
	Name        string   // recurso en la caché
	Path        string   // ruta base en el backend, p. ej. "/products"
	Invalidates []string // recursos invalidados tras una escritura exitosa
}

// Collection servicio CRUD genérico sobre una ruta REST del backend.
// T es la entidad, C el payload de alta y U el de actualización.
type Collection[T, C, U any] struct {
	backend Backend
	cache   *query.Cache
	cfg     Config
}

// NewCollection construye la colección. Si Invalidates está vacío se invalida el propio recurso.
func NewCollection[T, C, U any](b Backend, c *query.Cache, cfg Config) *Collection[T, C, U] {
	if len(cfg.Invalidates) == 0 {
		cfg.Invalidates = []string{cfg.Name}
	}
	return &Collection[T, C, U]{backend: b, cache: c, cfg: cfg}
}

// Resource nombre del recurso.
func (s *Collection[T, C, U]) Resource() string { return s.cfg.Name }

// List lee el listado (cacheado) con los filtros dados.
func (s *Collection[T, C, U]) List(ctx context.Context, params url.Values) ([]T, error) {
	key := query.NewKey(session.Scope(ctx), s.cfg.Name, params)
	return query.Get(ctx, s.cache, key, func(fctx context.Context) ([]T, error) {
		var out []T
		if err := s.backend.Do(fctx, http.MethodGet, s.cfg.Path, clean(params), nil, &out); err != nil {
			return nil, fmt.Errorf("%s: listar: %w", s.cfg.Name, err)
		}
		return out, nil
	})
}

// Get lee una entidad por id (cacheada bajo el mismo recurso).
func (s *Collection[T, C, U]) Get(ctx context.Context, id string) (T, error) {
	key := query.NewKey(session.Scope(ctx), s.cfg.Name, url.Values{"id": {id}})
	return query.Get(ctx, s.cache, key, func(fctx context.Context) (T, error) {
		var out T
		if err := s.backend.Do(fctx, http.MethodGet, s.cfg.Path+"/"+url.PathEscape(id), nil, nil, &out); err != nil {
			return out, fmt.Errorf("%s: obtener %s: %w", s.cfg.Name, id, err)
		}
		return out, nil
	})
}

// Create POST a la ruta base. Un solo intercambio; la caché solo cambia si tuvo éxito.
func (s *Collection[T, C, U]) Create(ctx context.Context, in C) (T, error) {
	var out T
	if err := s.backend.Do(ctx, http.MethodPost, s.cfg.Path, nil, in, &out); err != nil {
		return out, fmt.Errorf("%s: crear: %w", s.cfg.Name, err)
	}
	s.cache.Invalidate(ctx, s.cfg.Invalidates...)
	return out, nil
}

// Update PATCH /<path>/:id.
func (s *Collection[T, C, U]) Update(ctx context.Context, id string, in U) (T, error) {
	var out T
	if err := s.backend.Do(ctx, http.MethodPatch, s.cfg.Path+"/"+url.PathEscape(id), nil, in, &out); err != nil {
		return out, fmt.Errorf("%s: actualizar %s: %w", s.cfg.Name, id, err)
	}
	s.cache.Invalidate(ctx, s.cfg.Invalidates...)
	return out, nil
}

// Delete DELETE /<path>/:id.
func (s *Collection[T, C, U]) Delete(ctx context.Context, id string) error {
	if err := s.backend.Do(ctx, http.MethodDelete, s.cfg.Path+"/"+url.PathEscape(id), nil, nil, nil); err != nil {
		return fmt.Errorf("%s: eliminar %s: %w", s.cfg.Name, id, err)
	}
	s.cache.Invalidate(ctx, s.cfg.Invalidates...)
	return nil
}
