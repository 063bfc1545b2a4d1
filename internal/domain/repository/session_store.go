package repository

import "github.com/diego1198/inventory-frontend/internal/domain/entity"

// SessionStore almacén de la sesión del cliente (token + usuario).
// Get nunca falla: sesión ausente o corrupta se reporta como ok=false.
// Clear es idempotente.
type SessionStore interface {
	Set(s entity.Session) error
	Get() (*entity.Session, bool)
	Clear() error
}
