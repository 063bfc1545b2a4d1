// Package session implementa el puerto SessionStore: cookies en el gateway,
// archivo local en el cliente de terminal y memoria en tests.
package session

import (
	"sync"

	"github.com/diego1198/inventory-frontend/internal/domain/entity"
	"github.com/diego1198/inventory-frontend/internal/domain/repository"
)

var _ repository.SessionStore = (*MemoryStore)(nil)

// MemoryStore store en memoria, seguro para uso concurrente.
type MemoryStore struct {
	mu   sync.RWMutex
	sess *entity.Session
}

// NewMemoryStore crea un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Set guarda la sesión.
func (m *MemoryStore) Set(s entity.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := s
	m.sess = &cp
	return nil
}

// Get devuelve una copia de la sesión si hay token.
func (m *MemoryStore) Get() (*entity.Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.sess == nil || m.sess.Token == "" {
		return nil, false
	}
	cp := *m.sess
	return &cp, true
}

// Clear borra la sesión. Idempotente.
func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sess = nil
	return nil
}
